// ABOUTME: Funnel, connector and carrier asset CLI commands
// ABOUTME: Generates funnel strategies, toggles integrations and manages uploaded collateral
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/assets"
	"github.com/harperreed/lifehub/connectors"
	"github.com/harperreed/lifehub/funnels"
	"github.com/harperreed/lifehub/models"
)

func (a *App) funnelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "funnels",
		Aliases: []string{"funnel"},
		Short:   "Three-stage marketing funnels",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List funnels",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			list := h.Funnels.List()
			if len(list) == 0 {
				fmt.Fprintln(out, "No funnels found")
				fmt.Fprintln(out, "\nNext step: lifehub funnels generate --goal \"...\"")
				return nil
			}
			tw := newTable(out, "NAME", "PERSONA", "STATUS", "STAGES", "ID")
			for _, f := range list {
				row(tw, f.Name, f.Persona, string(f.Status), fmt.Sprintf("%d", len(f.Stages)), shortID(f.ID))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d funnel(s)\n", len(list))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a funnel's stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			f, err := resolve(h.Funnels.List(), func(f models.Funnel) string { return f.ID }, args[0], "funnel")
			if err != nil {
				return err
			}
			return printMarkdown(cmd.OutOrStdout(), funnelMarkdown(f))
		},
	}

	var goal, persona string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Have AI design a funnel for a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			f, err := h.GenerateFunnel(ctxOf(cmd), goal, persona)
			if err != nil {
				return aiError{err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Funnel created: %s (ID: %s)\n\n", f.Name, shortID(f.ID))
			return printMarkdown(cmd.OutOrStdout(), funnelMarkdown(f))
		},
	}
	generate.Flags().StringVar(&goal, "goal", "", "what the funnel should achieve (required)")
	generate.Flags().StringVar(&persona, "persona", "", "target persona (default: "+funnels.DefaultPersona+")")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a funnel between Draft and Active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			f, err := resolve(h.Funnels.List(), func(f models.Funnel) string { return f.ID }, args[0], "funnel")
			if err != nil {
				return err
			}
			toggled, _ := h.Funnels.ToggleStatus(f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", toggled.Name, toggled.Status)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a funnel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			f, err := resolve(h.Funnels.List(), func(f models.Funnel) string { return f.ID }, args[0], "funnel")
			if err != nil {
				return err
			}
			h.Funnels.Delete(f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Funnel deleted: %s\n", f.Name)
			return nil
		},
	}

	cmd.AddCommand(list, show, generate, toggle, remove)
	return cmd
}

func funnelMarkdown(f models.Funnel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s · %s_\n", f.Name, f.Persona, f.Status)
	for i, s := range f.Stages {
		fmt.Fprintf(&b, "\n## %d. %s\n\n%s\n\n> %s\n", i+1, s.Name, s.Strategy, s.AssetCopy)
	}
	return b.String()
}

func (a *App) connectorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connectors",
		Aliases: []string{"connector", "integrations"},
		Short:   "Agency, carrier and social integrations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List connectors by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			groups := h.Connectors.ByCategory()
			tw := newTable(out, "CATEGORY", "ID", "NAME", "STATUS", "LAST SYNC")
			for _, cat := range connectors.DisplayCategories() {
				for _, c := range groups[cat] {
					status := "○ available"
					if c.IsConnected {
						status = "● connected"
					}
					row(tw, string(cat), c.ID, c.Name, status, dash(c.LastSync))
				}
			}
			return tw.Flush()
		},
	}

	var agentID string
	connect := &cobra.Command{
		Use:   "connect <id>",
		Short: "Connect an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			c, err := h.Connectors.Connect(args[0], agentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Connected: %s\n", c.Name)
			return nil
		},
	}
	connect.Flags().StringVar(&agentID, "agent", "", "agent or writing number for this integration")

	disconnect := &cobra.Command{
		Use:   "disconnect <id>",
		Short: "Disconnect an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			c, err := h.Connectors.Disconnect(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Disconnected: %s\n", c.Name)
			return nil
		},
	}

	var all bool
	syncCmd := &cobra.Command{
		Use:   "sync [id]",
		Short: "Refresh one connected integration, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if all || len(args) == 0 {
				ids, err := h.Connectors.SyncAll(ctxOf(cmd))
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					fmt.Fprintln(out, "No connected integrations")
					return nil
				}
				sort.Strings(ids)
				fmt.Fprintf(out, "✓ Synced %d integration(s): %s\n", len(ids), strings.Join(ids, ", "))
				return nil
			}
			c, err := h.Connectors.Sync(ctxOf(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Synced: %s (%s)\n", c.Name, c.LastSync)
			return nil
		},
	}
	syncCmd.Flags().BoolVar(&all, "all", false, "sync every connected integration")

	cmd.AddCommand(list, connect, disconnect, syncCmd)
	return cmd
}

func (a *App) assetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assets",
		Aliases: []string{"asset"},
		Short:   "Carrier collateral vault",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List uploaded assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			list := h.Assets.List()
			if len(list) == 0 {
				fmt.Fprintln(out, "No assets found")
				return nil
			}
			tw := newTable(out, "NAME", "CARRIER", "TYPE", "UPLOADED", "ID")
			for _, as := range list {
				row(tw, as.Name, as.Carrier, as.Type, as.UploadDate, shortID(as.ID))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal: %d asset(s)\n", len(list))
			return nil
		},
	}

	var name string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF or image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if name == "" {
				name = filepath.Base(path)
			}
			asset, err := h.Assets.Upload(name, assets.MimeTypeFor(path), data, h.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Asset uploaded: %s (ID: %s)\n", asset.Name, shortID(asset.ID))
			fmt.Fprintf(out, "\nNext step: lifehub content asset %s\n", shortID(asset.ID))
			return nil
		},
	}
	upload.Flags().StringVar(&name, "name", "", "display name (default: file name)")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			as, err := resolve(h.Assets.List(), func(c models.CarrierAsset) string { return c.ID }, args[0], "asset")
			if err != nil {
				return err
			}
			h.Assets.Remove(as.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Asset removed: %s\n", as.Name)
			return nil
		},
	}

	cmd.AddCommand(list, upload, remove)
	return cmd
}
