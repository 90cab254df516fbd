package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/config"
	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/prometheus"
	httpapi "github.com/turtacn/ReactionMapper/internal/interfaces/http"
	"github.com/turtacn/ReactionMapper/internal/interfaces/http/handlers"
	"github.com/turtacn/ReactionMapper/internal/interfaces/http/middleware"
	"github.com/turtacn/ReactionMapper/pkg/errors"
)

type serveOptions struct {
	host      string
	port      int
	assignIDs bool
	watch     bool
}

// NewServeCommand creates `rxnmap serve`.
func NewServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mapping API over HTTP",
		Long: "Starts the HTTP API (POST /api/v1/mappings) with health probes and\n" +
			"Prometheus metrics.  With --watch, edits to mapping.theory in the config\n" +
			"file take effect without a restart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cliCtx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.host, "host", "", "listen host (default: server.host)")
	f.IntVarP(&opts.port, "port", "p", 0, "listen port (default: server.port)")
	f.BoolVar(&opts.assignIDs, "assign-ids", false, "give atoms without an identifier a generated one")
	f.BoolVar(&opts.watch, "watch", true, "reload the default theory when the config file changes")
	return cmd
}

// apiServer is the assembled HTTP stack of `rxnmap serve`.
type apiServer struct {
	server *httpapi.Server
	theory *handlers.TheorySetting
}

func buildServer(cliCtx *CLIContext, opts *serveOptions) (*apiServer, error) {
	cfg := cliCtx.Config
	logger := cliCtx.Logger

	theory, err := mapping.ParseTheory(cfg.Mapping.Theory)
	if err != nil {
		return nil, err
	}

	var (
		recorder   matching.Recorder
		metrics    = cfg.Metrics
		routerConf = httpapi.RouterConfig{
			Mode:        cfg.Server.Mode,
			MaxBodySize: cfg.Server.MaxBodySize,
			Logging:     middleware.DefaultLoggingConfig(),
			Logger:      logger,
		}
	)
	if metrics.Enabled {
		collector, err := prometheus.NewCollector(prometheus.CollectorConfig{
			Namespace:            metrics.Namespace,
			Subsystem:            metrics.Subsystem,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, err
		}
		recorder = prometheus.NewMappingMetrics(collector)
		routerConf.Metrics = collector.Handler()
		routerConf.MetricsPath = metrics.Path
	}

	m, err := NewMatcher(cfg.Mapping, logger, recorder)
	if err != nil {
		return nil, err
	}

	setting := handlers.NewTheorySetting(theory)
	routerConf.MappingHandler = handlers.NewMappingHandler(m, setting, handlers.MappingHandlerOptions{
		Decode:      reaction.DecodeOptions{AssignMissingIDs: opts.assignIDs},
		IndexedJobs: cfg.Mapping.IndexedJobs,
	}, logger)
	routerConf.HealthHandler = handlers.NewHealthHandler(Version, handlers.CheckerFunc{
		ComponentName: "matching",
		Fn: func(context.Context) error {
			if t := setting.Get(); !t.IsValid() {
				return errors.Newf(errors.ErrCodeTheoryUnsupported, "default theory %q is not supported", t)
			}
			return nil
		},
	})

	srvCfg := cfg.Server
	if opts.host != "" {
		srvCfg.Host = opts.host
	}
	if opts.port > 0 {
		srvCfg.Port = opts.port
	}
	return &apiServer{
		server: httpapi.NewServer(srvCfg, httpapi.NewRouter(routerConf), logger),
		theory: setting,
	}, nil
}

// reloadTheory returns the config.Watch callback that swaps the default
// theory.  Other settings need a restart.
func reloadTheory(setting *handlers.TheorySetting, logger logging.Logger) func(*config.Config) {
	return func(cfg *config.Config) {
		next, err := mapping.ParseTheory(cfg.Mapping.Theory)
		if err != nil {
			logger.Warn("ignoring reloaded theory", logging.Err(err))
			return
		}
		if prev := setting.Get(); prev != next {
			setting.Set(next)
			logger.Info("default theory reloaded", logging.String("from", prev.String()), logging.String("to", next.String()))
		}
	}
}

func runServe(ctx context.Context, cliCtx *CLIContext, opts *serveOptions) error {
	logger := cliCtx.Logger
	defer func() { _ = logger.Sync() }()

	api, err := buildServer(cliCtx, opts)
	if err != nil {
		return err
	}

	if opts.watch && cliCtx.ConfigPath != "" {
		err := config.Watch(cliCtx.ConfigPath, reloadTheory(api.theory, logger), func(err error) {
			logger.Warn("config reload rejected", logging.Err(err))
		})
		if err != nil {
			logger.Warn("config watch disabled", logging.Err(err))
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- api.server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")
	if err := api.server.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}
