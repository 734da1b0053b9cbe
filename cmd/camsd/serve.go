package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/anbuchelva/cams/internal/config"
	"github.com/anbuchelva/cams/internal/notify"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/server"
	"github.com/anbuchelva/cams/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and notification sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	st, err := store.NewXLSX(cfg.DataDir, repository.Schemas)
	if err != nil {
		slog.Error("failed to initialize record store", "error", err)
		return err
	}
	blobs, err := store.NewBlobStore(cfg.UploadsDir)
	if err != nil {
		slog.Error("failed to initialize uploads directory", "error", err)
		return err
	}

	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		m, err := notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		if err != nil {
			slog.Error("failed to configure mailer", "error", err)
			return err
		}
		mailer = m
		slog.Info("digest mailer configured", "host", cfg.SMTPHost)
	} else {
		slog.Warn("SMTP_HOST not set, digest emails disabled")
	}

	notifyOpts := notify.DefaultOptions()
	if cfg.NotifyConfigPath != "" {
		notifyOpts, err = notify.LoadConfig(cfg.NotifyConfigPath, notifyOpts)
		if err != nil {
			slog.Error("failed to load notify config", "error", err)
			return err
		}
		slog.Info("notify config loaded", "path", cfg.NotifyConfigPath)
	}

	srv := server.New(cfg, st, blobs, mailer, notifyOpts)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var sink io.Writer = os.Stdout
	if cfg.LogFile != "" {
		sink = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(sink, opts)
	} else {
		handler = slog.NewJSONHandler(sink, opts)
	}
	slog.SetDefault(slog.New(handler))
}
