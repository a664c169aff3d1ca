package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logistics/cmd"
	httpin "logistics/internal/adapters/in/http"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "logistics",
		Short:         "Parcel logistics core: custody protocol, assignments and tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context(), envFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			return migrate(envFile)
		},
	})

	return root
}

func migrate(envFile string) error {
	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	logger, err := cmd.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}

	db, err := cmd.OpenDatabase(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return cmd.MigrateDatabase(db, logger)
}

func serve(parent context.Context, envFile string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	logger, err := cmd.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}
	echoLevel, err := httpin.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	db, err := cmd.OpenDatabase(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	app := cmd.NewCompositionRoot(cfg, db, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close brokers", "error", closeErr)
		}
	}()

	publisher, err := app.CreateEventPublisher()
	if err != nil {
		return err
	}
	jobManager, err := app.CreateJobManager(publisher)
	if err != nil {
		return err
	}

	e, err := httpin.NewEcho(ctx, app.CreateHTTPServer(), logger, echoLevel)
	if err != nil {
		return err
	}

	if err := jobManager.StartAll(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("HTTP shutdown failed", "error", shutdownErr)
	}
	jobManager.StopAll(shutdownCtx)

	return err
}
