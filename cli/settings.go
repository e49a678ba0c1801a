// ABOUTME: Settings and cache maintenance commands
// ABOUTME: Manages the stored Gemini key, writes the config file and wipes cached state
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/config"
	"github.com/harperreed/lifehub/gateway"
)

func (a *App) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Configuration and integration keys",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			cfg := a.cfg
			source := cfg.Path
			if source == "" {
				source = "(defaults)"
			}
			key, keySource := h.APIKey(), "settings"
			if key == "" {
				key, keySource = cfg.AI.APIKey, "GEMINI_API_KEY"
			}
			if key == "" {
				keySource = "not set"
			}

			fmt.Fprintf(out, "Config:     %s\n", source)
			fmt.Fprintf(out, "Backend:    %s\n", cfg.Storage.Backend)
			if cfg.Storage.Backend == config.BackendSQLite {
				fmt.Fprintf(out, "Database:   %s\n", cfg.Storage.Path)
			}
			fmt.Fprintf(out, "Model:      %s (chat: %s)\n", cfg.AI.Model, cfg.AI.ChatModel)
			fmt.Fprintf(out, "Gemini key: %s [%s]\n", dash(gateway.MaskKey(key)), keySource)
			fmt.Fprintf(out, "Passcode:   %v\n", h.Gate().Enabled())
			fmt.Fprintf(out, "Web:        %s\n", cfg.Web.Addr)
			return nil
		},
	}

	setKey := &cobra.Command{
		Use:   "set-key <key>",
		Short: "Store the Gemini API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			h.SetAPIKey(args[0])
			if h.APIKey() == "" {
				return fmt.Errorf("API key is required")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Gemini key saved: %s\n", gateway.MaskKey(h.APIKey()))
			return nil
		},
	}

	clearKey := &cobra.Command{
		Use:   "clear-key",
		Short: "Forget the stored Gemini API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			h.SetAPIKey("")
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Gemini key cleared")
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if a.cfg.Path != "" && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", a.cfg.Path)
			}
			if err := config.Save(a.cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Config written: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print config and data locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfgPath := a.cfg.Path
			if cfgPath == "" {
				cfgPath = config.DefaultPath() + " (not created)"
			}
			fmt.Fprintf(out, "Config: %s\n", cfgPath)
			fmt.Fprintf(out, "Data:   %s\n", config.DataDir())
			return nil
		},
	}

	cmd.AddCommand(show, setKey, clearKey, initCmd, path)
	return cmd
}

func (a *App) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Local cache maintenance",
	}

	var confirm bool
	wipe := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every cached record and restore the starter data",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !confirm {
				fmt.Fprintln(out, "WARNING: This deletes clients, posts, templates, links, documents and settings.")
				fmt.Fprintln(out, "\nTo confirm, run:\n  lifehub cache wipe --confirm")
				return nil
			}
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			if err := h.WipeCache(); err != nil {
				return fmt.Errorf("failed to wipe cache: %w", err)
			}
			fmt.Fprintln(out, "✓ Cache wiped")
			return nil
		},
	}
	wipe.Flags().BoolVar(&confirm, "confirm", false, "really wipe")

	cmd.AddCommand(wipe)
	return cmd
}
