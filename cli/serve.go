// ABOUTME: Long-running surfaces: the TUI, the web dashboard and the MCP server
// ABOUTME: Each opens the hub once and runs until interrupted
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/lifehub/handlers"
	"github.com/harperreed/lifehub/tui"
	"github.com/harperreed/lifehub/web"
)

func (a *App) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			return tui.Run(h)
		},
	}
}

func (a *App) webCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.Hub()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Web.Addr
			}
			srv, err := web.NewServer(h, a.logger.Named("web"))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.logger.Info("web dashboard listening", zap.String("addr", addr))
			return srv.Start(ctx, addr, a.cfg.Web.ReadTimeout.Std(), a.cfg.Web.ShutdownTimeout.Std())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: web.addr from config)")
	return cmd
}

func (a *App) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.logger.Info("MCP server starting", zap.String("version", a.Version))
			return handlers.NewServer(h, a.Version).Run(ctx, &mcp.StdioTransport{})
		},
	}
}
