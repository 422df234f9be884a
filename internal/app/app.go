package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/madewira/tripdesk/internal/config"
	"github.com/madewira/tripdesk/internal/idgen/random"
	"github.com/madewira/tripdesk/internal/intake"
	"github.com/madewira/tripdesk/internal/logger"
	"github.com/madewira/tripdesk/internal/migration"
	"github.com/madewira/tripdesk/internal/parser/gemini"
	"github.com/madewira/tripdesk/internal/storage/memory"
	"github.com/madewira/tripdesk/internal/transport/web"
)

func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	storage := memory.New(memory.Config{L: l})

	if cfg.SeedDemoData {
		if err := migration.Up(ctx, l, storage); err != nil {
			return fmt.Errorf("up demo migration: %w", err)
		}

		l.LogInfo("Demo migration has been applied")
	}

	idGen := random.New()
	intakeManager := intake.New(l, storage, idGen)

	parser, err := gemini.New(gemini.Config{
		L:       l,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.ParseTimeout,
	})
	if err != nil {
		return fmt.Errorf("init text parser: %w", err)
	}

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              cfg.Host,
		Port:              cfg.Port,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		LivenessEndpoint:  "/liveness",
	}

	srv, err := web.New(ctx, webConf, intakeManager, parser)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
