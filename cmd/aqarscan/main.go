package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"aqarscan/internal/config"
	"aqarscan/internal/constants"
	"aqarscan/internal/database"
	"aqarscan/internal/service"
	"aqarscan/internal/store"
	"aqarscan/internal/tracing"
	"aqarscan/pkg/whatsapp"
	"aqarscan/pkg/whatsapp/types"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	// CLI flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	configPath = flag.String("config", "config.json", "Path to configuration file")
	version    = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("AqarScan %s\nBuild Time: %s\nGit Commit: %s\n", Version, BuildTime, GitCommit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"version": Version,
		"build":   BuildTime,
		"commit":  GitCommit,
	}).Info("Starting AqarScan")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logger.Warnf("Invalid log level %q, defaulting to info", cfg.LogLevel)
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
	}

	tracingManager := tracing.NewManager(cfg.Tracing, logger)
	if err := tracingManager.Initialize(ctx); err != nil {
		logger.Warnf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := tracingManager.Shutdown(context.Background()); err != nil {
			logger.Warnf("Failed to shutdown tracing: %v", err)
		}
	}()

	st, err := store.New(cfg.Store.SnapshotPath, logger)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	st.Load()

	archive, err := database.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open offer archive: %w", err)
	}
	defer func() {
		if err := archive.Close(); err != nil {
			logger.Warnf("Failed to close offer archive: %v", err)
		}
	}()

	waClient := whatsapp.NewClient(types.ClientConfig{
		BaseURL:     cfg.WhatsApp.APIBaseURL,
		APIKey:      os.Getenv("WHATSAPP_API_KEY"),
		SessionName: cfg.WhatsApp.SessionName,
		Timeout:     time.Duration(cfg.WhatsApp.TimeoutSec) * time.Second,
	})

	if err := waClient.WaitForSessionReady(ctx, constants.DefaultSessionReadyWaitSec*time.Second); err != nil {
		logger.Warnf("WhatsApp session not ready, continuing anyway: %v", err)
	}

	hub := service.NewEventHub(logger)
	analyzer := service.NewAnalyzer(st, archive, logger)
	scanner := service.NewScanner(
		waClient,
		analyzer,
		st,
		hub,
		time.Duration(cfg.Scanner.GroupDelayMs)*time.Millisecond,
		time.Duration(cfg.Scanner.FetchTimeoutSec)*time.Second,
		logger,
	)

	checkpointer := service.NewCheckpointer(st, cfg.Store.CheckpointIntervalSec, logger)
	go checkpointer.Start(ctx)
	defer checkpointer.Stop()

	server := NewServer(cfg.Server.Port, cfg.Scanner.MaxMessagesPerGroup, scanner, st, archive, hub, waClient, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErrCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err := <-serverErrCh:
		logger.Error(err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(constants.DefaultGracefulShutdownSec)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	if err := st.Checkpoint(); err != nil {
		logger.WithError(err).Error("Failed to write final checkpoint")
	}

	logger.Info("Server shutdown completed")
	return nil
}
