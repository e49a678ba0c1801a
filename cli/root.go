// ABOUTME: Root cobra command and the shared App the subcommands run against
// ABOUTME: Loads config, builds the zap logger and opens the storage backend on demand
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harperreed/lifehub/auth"
	"github.com/harperreed/lifehub/calendar"
	"github.com/harperreed/lifehub/charm"
	"github.com/harperreed/lifehub/config"
	"github.com/harperreed/lifehub/db"
	"github.com/harperreed/lifehub/gateway"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/store"
)

// App holds what every subcommand shares. The hub is opened on first use so
// commands like `settings path` never touch storage.
type App struct {
	Version string

	cfg    *config.Config
	logger *zap.Logger
	hub    *hub.Hub
	kv     store.KV
	closer io.Closer
	charm  *charm.Client
	ai     gateway.Gateway
	rng    calendar.Intner
	now    func() time.Time

	configPath string
	backend    string
	verbose    bool
	ephemeral  bool
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	app := &App{Version: version}
	root := app.RootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lifehub",
		Short: "Life Hub - CRM, content calendar and AI co-pilot for independent insurance agents",
		Long: `Life Hub keeps an agent's pipeline, content calendar, resource library and
AI-assisted marketing in one local store.

Data lives in SQLite under the XDG data dir by default. Set storage.backend to
"charm" in the config file to sync through Charm Cloud instead.`,
		Version:           a.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/lifehub/config.yaml)")
	flags.StringVar(&a.backend, "backend", "", "storage backend override: sqlite, charm or memory")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	flags.BoolVar(&a.ephemeral, "ephemeral", false, "use an in-memory store that is discarded on exit")

	root.AddCommand(
		a.clientsCommand(),
		a.postsCommand(),
		a.calendarCommand(),
		a.campaignCommand(),
		a.contentCommand(),
		a.templatesCommand(),
		a.libraryCommand(),
		a.funnelsCommand(),
		a.linksCommand(),
		a.docsCommand(),
		a.connectorsCommand(),
		a.assetsCommand(),
		a.aiCommand(),
		a.authCommand(),
		a.settingsCommand(),
		a.cacheCommand(),
		a.syncCommand(),
		a.vizCommand(),
		a.tuiCommand(),
		a.webCommand(),
		a.mcpCommand(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command, args []string) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.ephemeral {
		a.cfg.Storage.Backend = config.BackendMemory
	} else if a.backend != "" {
		switch a.backend {
		case config.BackendSQLite, config.BackendCharm, config.BackendMemory:
			a.cfg.Storage.Backend = a.backend
		default:
			return fmt.Errorf("unknown backend %q (want sqlite, charm or memory)", a.backend)
		}
	}

	if a.logger == nil {
		zcfg := zap.NewProductionConfig()
		zcfg.OutputPaths = []string{"stderr"}
		level, err := zapcore.ParseLevel(a.cfg.Log.Level)
		if err != nil {
			level = zapcore.WarnLevel
		}
		if a.verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

// Close releases the hub and backend and flushes the logger.
func (a *App) Close() {
	if a.hub != nil {
		_ = a.hub.Close()
		a.hub = nil
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil && a.logger != nil {
			a.logger.Warn("failed to close storage", zap.Error(err))
		}
		a.closer = nil
		a.kv = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *App) openKV() (store.KV, error) {
	if a.kv != nil {
		return a.kv, nil
	}
	switch a.cfg.Storage.Backend {
	case config.BackendMemory:
		a.kv = store.NewMemoryKV()
		return a.kv, nil
	case config.BackendCharm:
		client, err := a.charmClient()
		if err != nil {
			return nil, err
		}
		a.kv = client
		return client, nil
	default:
		path := a.cfg.Storage.Path
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		kv, err := db.OpenKV(path)
		if err != nil {
			return nil, err
		}
		a.kv, a.closer = kv, kv
		a.logger.Debug("opened sqlite store", zap.String("path", path))
		return kv, nil
	}
}

func (a *App) charmClient() (*charm.Client, error) {
	if a.charm != nil {
		return a.charm, nil
	}
	cfg, err := charm.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load charm config: %w", err)
	}
	client, err := charm.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	a.charm = client
	return client, nil
}

// Hub opens storage on first call. AI operations use Gemini with the key
// stored in settings, falling back to GEMINI_API_KEY.
func (a *App) Hub() (*hub.Hub, error) {
	if a.hub != nil {
		return a.hub, nil
	}
	kv, err := a.openKV()
	if err != nil {
		return nil, err
	}

	gw := a.ai
	if gw == nil {
		creds := gateway.StoreCredentials{
			KV:       kv,
			Fallback: func() string { return a.cfg.AI.APIKey },
		}
		gw = gateway.NewGemini(creds, gateway.Options{
			Model:     a.cfg.AI.Model,
			ChatModel: a.cfg.AI.ChatModel,
			Timeout:   a.cfg.AI.Timeout.Std(),
			Logger:    a.logger.Named("gateway"),
		})
	}

	a.hub = hub.New(kv, hub.Options{
		Logger:      a.logger,
		Gateway:     gw,
		Gate:        auth.Gate{Passcode: a.cfg.Auth.Passcode},
		SyncLatency: a.cfg.Connectors.SyncLatency.Std(),
		Now:         a.now,
	})
	return a.hub, nil
}

// UnlockedHub is Hub plus the passcode gate. Every data command goes through it.
func (a *App) UnlockedHub() (*hub.Hub, error) {
	h, err := a.Hub()
	if err != nil {
		return nil, err
	}
	if err := h.RequireUnlocked(); err != nil {
		return nil, err
	}
	return h, nil
}
