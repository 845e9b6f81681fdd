package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-partnerform/internal/config"
	"github.com/goliatone/go-partnerform/internal/devserver"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file loaded before the environment (ignored when missing)")
	addr := flag.String("addr", "", "listen address, overrides config")
	path := flag.String("path", devserver.DefaultPath, "route the proposal endpoint is mounted on")
	forced := flag.Int("forced-status", -1, "answer every proposal with this status (0 disables), overrides config")
	flag.Parse()

	cfg, err := config.Load(config.Options{Path: *configPath, EnvFiles: []string{*envFile}})
	if err != nil {
		log.Fatalf("partner-devserver: %v", err)
	}
	if *addr != "" {
		cfg.DevServer.Addr = *addr
	}
	if *forced >= 0 {
		cfg.DevServer.ForcedStatus = *forced
		if err := cfg.Validate(); err != nil {
			log.Fatalf("partner-devserver: %v", err)
		}
	}

	logger := cfg.NewLogger(os.Stderr)

	dev, err := devserver.New(
		devserver.WithLogger(logger),
		devserver.WithPath(*path),
		devserver.WithForcedStatus(cfg.DevServer.ForcedStatus),
	)
	if err != nil {
		log.Fatalf("partner-devserver: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.DevServer.Addr,
		Handler:           dev.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("partner dev server listening",
		slog.String("addr", cfg.DevServer.Addr),
		slog.String("path", *path),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("partner-devserver: %v", err)
	}
}
