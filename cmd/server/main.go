package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/soaringjerry/klausurarchiv/internal/ai"
	"github.com/soaringjerry/klausurarchiv/internal/api"
	"github.com/soaringjerry/klausurarchiv/internal/config"
	"github.com/soaringjerry/klausurarchiv/internal/db"
	"github.com/soaringjerry/klausurarchiv/internal/metrics"
	"github.com/soaringjerry/klausurarchiv/internal/middleware"
	"github.com/soaringjerry/klausurarchiv/internal/services"
	"github.com/soaringjerry/klausurarchiv/internal/utils"
)

// Set via -ldflags at build time; KLAUSUR_COMMIT and KLAUSUR_BUILD_TIME override.
var (
	commit    = "dev"
	buildTime = ""
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "klausurarchiv",
		Usage: "Exam archive API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML config file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, c.String("config"))
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply preference store migrations and exit",
				Action: func(ctx context.Context, c *cli.Command) error {
					return migrate(ctx, c.String("config"))
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func loadConfig(path string) (*config.Config, *zap.Logger, error) {
	cfg, used, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	if used != "" {
		logger.Info("Loaded config", zap.String("path", used))
	} else {
		logger.Info("No config file found, using defaults and environment")
	}
	return cfg, logger, nil
}

func serve(ctx context.Context, configPath string) error {
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	prefs, err := db.OpenPreferences(ctx, cfg.Prefs.Backend, cfg.Prefs.Path, cfg.Prefs.MigrationsDir, logger)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if err := prefs.Close(); err != nil {
			logger.Warn("Failed to close preferences", zap.Error(err))
		}
	}()
	favorites, err := services.NewFavoritesService(ctx, prefs, logger)
	if err != nil {
		return err
	}

	provider, err := ai.New(ctx, ai.Options{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	var generator services.TextGenerator
	if provider != nil {
		generator = provider
		defer func() { _ = provider.Close() }()
		logger.Info("Study tips enabled", zap.String("provider", cfg.AI.Provider))
	} else {
		logger.Warn("No AI credential configured, study tips are unavailable")
	}
	tips := services.NewTipsService(generator, logger,
		services.WithTipsRateLimit(cfg.AI.RatePerMinute),
		services.WithTipsTimeout(cfg.AI.Timeout),
	)

	store := api.NewStore()
	auth := services.NewAuthService(store)
	if err := api.Seed(store, auth, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}

	router := api.NewRouter(store, auth, api.Options{
		Tokens:    middleware.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Favorites: favorites,
		Tips:      tips,
		OCR:       services.SimulatedOCR{Delay: cfg.OCR.Delay},
		Metrics:   metrics.New(),
		Logger:    logger,
		StaticDir: cfg.Server.StaticDir,
		Commit:    utils.SafeEnv("KLAUSUR_COMMIT", commit),
		BuildTime: utils.SafeEnv("KLAUSUR_BUILD_TIME", buildTime),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Klausurarchiv server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
