package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "Redis protocol compatible in-memory key-value server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Value reported by CONFIG GET dir",
			},
			&cli.StringFlag{
				Name:  "dbfilename",
				Usage: "Value reported by CONFIG GET dbfilename",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "RESP listen address (default " + config.DefaultRedisAddr + ")",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	configFile := c.String("config")

	cfg, err := loadConfig(configFile, flagOverrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	slog.SetDefault(log)

	log.Info("starting respkv-server",
		"version", buildinfo.Get().Version,
		"commit", buildinfo.Get().Commit,
		"config", configFile)

	store := memory.New(
		memory.WithShardCount(cfg.Storage.ShardCount),
		memory.WithSweepInterval(cfg.Storage.SweepInterval),
		memory.WithLogger(log),
	)
	store.Start()

	params := memory.NewConfigStore(map[string]string{
		memory.ParamDir:        cfg.Persistence.Dir,
		memory.ParamDBFilename: cfg.Persistence.DBFilename,
	})
	log.Info("config parameters", "params", params.Snapshot())

	reg := metric.NewRegistry()
	reg.MustRegister(metric.NewKeyspaceCollector(func() metric.KeyspaceStats {
		st := store.Stats()
		return metric.KeyspaceStats{
			Keys:          st.Keys,
			ExpiredLazy:   st.ExpiredLazy,
			ExpiredActive: st.ExpiredActive,
		}
	}))

	redisSrv, err := redisserver.New(redisConfig(cfg), store, params, reg, log)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("init redis server: %w", err)
	}

	ctx, cancel := context.WithCancelCause(c.Context)
	defer cancel(nil)

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, log)

	// Hooks run in reverse order: listeners stop before the store.
	shutdownHandler.OnShutdown("store", func(context.Context) error {
		return store.Close()
	})

	shutdownHandler.OnShutdown("redis", redisSrv.Shutdown)

	go func() {
		if err := redisSrv.ListenAndServe(ctx); err != nil {
			log.Error("redis server error", "error", err)
			cancel(fmt.Errorf("redis server: %w", err))
		}
	}()

	if cfg.Server.Metrics.Enabled {
		httpSrv := httpserver.New(cfg.Server.Metrics.Addr, httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics: reg,
			Keys:    store.Len,
			Logger:  log,
		}), log)

		shutdownHandler.OnShutdown("http", httpSrv.Shutdown)

		go func() {
			if err := httpSrv.ListenAndServe(); err != nil {
				log.Error("http server error", "error", err)
				cancel(fmt.Errorf("http server: %w", err))
			}
		}()
	}

	if configFile != "" {
		watcher, err := watchConfig(configFile, flagOverrides(c), log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	shutdownErr := shutdownHandler.Wait(ctx)

	// A listener failure cancels ctx with its error as the cause.
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return errors.Join(cause, shutdownErr)
	}
	if shutdownErr != nil {
		log.Error("shutdown error", "error", shutdownErr)
		return shutdownErr
	}

	log.Info("server stopped gracefully")
	return nil
}

// flagOverrides returns the explicitly set flags as config keys.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("dir") {
		overrides["persistence.dir"] = c.String("dir")
	}
	if c.IsSet("dbfilename") {
		overrides["persistence.dbfilename"] = c.String("dbfilename")
	}
	if c.IsSet("addr") {
		overrides["server.redis.addr"] = c.String("addr")
	}
	return overrides
}

// loadConfig layers defaults, the config file, the environment and flag
// overrides, then validates the result.
func loadConfig(configFile string, overrides map[string]any) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	loader := confloader.NewLoader(opts...)

	if err := loader.LoadDefaults(cfg); err != nil {
		return nil, err
	}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Address:      r.Addr,
		MaxClients:   r.MaxClients,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		IdleTimeout:  r.IdleTimeout,
		RateLimit:    r.RateLimit,
		Decoder:      r.Decoder,
	}
}

// watchConfig reloads the log level whenever the config file changes.
// Other settings take effect on restart.
func watchConfig(configFile string, overrides map[string]any, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		_ = watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(path, overrides)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		prev := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		if cur := logger.GetLevel(); cur != prev {
			log.Info("log level changed", "from", prev, "to", cur)
		}
	})
	watcher.StartAsync()

	return watcher, nil
}
