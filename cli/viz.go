// ABOUTME: Visualization CLI commands
// ABOUTME: Terminal dashboard and the Graphviz pipeline graph
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/viz"
)

func (a *App) vizCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Dashboard and pipeline graph",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the pipeline and content dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(viz.GenerateDashboardStats(h)))
			return nil
		},
	}

	var output string
	graph := &cobra.Command{
		Use:   "graph",
		Short: "Emit the client pipeline as Graphviz DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			dot, err := viz.GeneratePipelineGraph(h.Clients())
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Graph written: %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), dot)
			return nil
		},
	}
	graph.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	cmd.AddCommand(dashboard, graph)
	return cmd
}
