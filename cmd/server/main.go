package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"trends-go/internal/config"
	"trends-go/internal/handler"
	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "config/dev.yaml", "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func (app *Application) Run() error {
	manager := config.NewManager()
	cfg, err := manager.Load(app.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	if app.debug {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg)
	logger.SetLogger(log)

	fetcher := trends.NewFetcher(trends.Config{
		Endpoint:  cfg.API.Endpoint,
		APIKey:    cfg.API.APIKey,
		QPS:       cfg.API.QPS,
		Timeout:   time.Duration(cfg.API.TimeoutMs) * time.Millisecond,
		BatchSize: cfg.Fetch.BatchSize,
	})

	srv := fiber.New(fiber.Config{
		ReadTimeout: 30 * time.Second,
		// Large term lists fetch slowly through upstream pacing.
		WriteTimeout: 5 * time.Minute,
	})
	handler.NewController(fetcher, cfg.Fetch).Register(srv)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Server listening")
		errCh <- srv.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
