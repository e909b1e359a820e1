package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/example/luxe/internal/config"
	"github.com/example/luxe/internal/database"
	"github.com/example/luxe/internal/logger"
	"github.com/example/luxe/internal/routes"
	"github.com/example/luxe/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	cmd := &cli.Command{
		Name:  "luxe",
		Usage: "Luxe storefront backend",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, cfg, log)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, cfg, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := database.Connect(cfg.DatabaseURL)
					if err != nil {
						return err
					}
					log.Info("migration complete")
					return database.Close(db)
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create the administrator account if it does not exist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Value: cfg.AdminEmail, Usage: "admin email"},
					&cli.StringFlag{Name: "password", Value: cfg.AdminPassword, Usage: "admin password"},
					&cli.StringFlag{Name: "name", Value: cfg.AdminName, Usage: "admin display name"},
					&cli.StringFlag{Name: "phone", Value: cfg.AdminPhone, Usage: "admin phone"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := database.Connect(cfg.DatabaseURL)
					if err != nil {
						return err
					}
					defer database.Close(db)

					auth := routes.NewAuthService(routes.Deps{DB: db, Config: cfg, Log: log})
					created, err := auth.EnsureAdmin(ctx, services.AdminInput{
						Email:    c.String("email"),
						Password: c.String("password"),
						Name:     c.String("name"),
						Phone:    c.String("phone"),
					})
					if err != nil {
						return err
					}
					if !created {
						log.Info("admin already exists", slog.String("email", c.String("email")))
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var rdb *redis.Client
	if cfg.WishlistBackend == config.WishlistBackendRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
	}

	deps := routes.Deps{DB: db, Redis: rdb, Config: cfg, Log: log}

	if cfg.AdminPassword != "" {
		created, err := routes.NewAuthService(deps).EnsureAdmin(ctx, services.AdminInput{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
			Phone:    cfg.AdminPhone,
		})
		if err != nil {
			log.Warn("admin bootstrap failed", slog.String("error", err.Error()))
		} else if created {
			log.Info("admin bootstrap complete", slog.String("email", cfg.AdminEmail))
		}
	}

	app := routes.NewApp(deps)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("port", cfg.AppPort), slog.String("wishlist_backend", cfg.WishlistBackend))
		errCh <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
