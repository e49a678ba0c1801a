// ABOUTME: Charm Cloud sync commands
// ABOUTME: Status, linking, on-demand sync, wipe and the auto-sync preference
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/charm"
)

func (a *App) syncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the hub through Charm Cloud",
		Long: `Charm sync is used when storage.backend is "charm". Authentication uses
your SSH keys, so there is no login step.`,
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration and connection state",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.charmClient()
			if err != nil {
				return err
			}
			return charm.WriteStatus(cmd.OutOrStdout(), c)
		},
	}

	link := &cobra.Command{
		Use:   "link",
		Short: "Link this device to your Charm account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.charmClient()
			if err != nil {
				return err
			}
			return charm.Link(cmd.OutOrStdout(), c)
		},
	}

	now := &cobra.Command{
		Use:   "now",
		Short: "Sync immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.charmClient()
			if err != nil {
				return err
			}
			return charm.SyncNow(cmd.OutOrStdout(), c)
		},
	}

	var confirm bool
	wipe := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every key in the synced store",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.charmClient()
			if err != nil {
				return err
			}
			return charm.Wipe(cmd.OutOrStdout(), c, confirm)
		},
	}
	wipe.Flags().BoolVar(&confirm, "confirm", false, "really wipe")

	auto := &cobra.Command{
		Use:       "auto <on|off>",
		Short:     "Turn auto-sync on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var enabled bool
			switch args[0] {
			case "on", "true":
				enabled = true
			case "off", "false":
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			c, err := a.charmClient()
			if err != nil {
				return err
			}
			return charm.SetAutoSync(cmd.OutOrStdout(), c.Config(), enabled)
		},
	}

	cmd.AddCommand(status, link, now, wipe, auto)
	return cmd
}
