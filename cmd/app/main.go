package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/natsbus"
	"ordering/internal/adapters/out/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Order service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	config := cmd.LoadConfig()
	logger := cmd.NewLogger(os.Stdout, config.AppEnv, config.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, sqlDB, err := postgres.Open(postgres.DSN(
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode,
	))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var broker natsbus.Conn
	if config.NATSURL != "" {
		nc, connErr := natsbus.Connect(config.NATSURL, logger)
		if connErr != nil {
			return connErr
		}
		defer func() {
			if drainErr := nc.Drain(); drainErr != nil {
				logger.Warn("Failed to drain NATS connection", "error", drainErr)
			}
		}()
		broker = nc
	} else {
		logger.Info("NATS_URL not set, order events are not published to a broker")
	}

	app := cmd.NewCompositionRoot(config, logger, gormDB, broker)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := app.CreateHTTPRouter()
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", config.HTTPPort, "env", config.AppEnv)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			serverErr <- startErr
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
