package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/southmarket/storefront/internal/backend"
	"github.com/southmarket/storefront/internal/chat"
	"github.com/southmarket/storefront/internal/config"
	"github.com/southmarket/storefront/internal/page"
	"github.com/southmarket/storefront/internal/proxy"
	"github.com/southmarket/storefront/internal/search"
	"github.com/southmarket/storefront/internal/server"
	"github.com/southmarket/storefront/internal/storage"
	"github.com/southmarket/storefront/internal/storage/memory"
	"github.com/southmarket/storefront/internal/storage/sqlite"
	"github.com/southmarket/storefront/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("storefront", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := newTranscriptStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open transcript store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close transcript store", slog.String("error", err.Error()))
		}
	}()

	// Typed backend client for the renderer and the controllers.
	client := backend.NewClient(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout))

	// Gateway proxy for the opaque /api surface.
	forwarder := proxy.New(cfg.Backend.BaseURL, logger,
		proxy.WithTimeout(cfg.Backend.Timeout))

	searchCtrl := search.New(client, logger,
		search.WithDebounce(cfg.Search.Debounce),
		search.WithBlurGrace(cfg.Search.BlurGrace))
	defer searchCtrl.Close()

	chatSession := chat.NewSession(client, logger,
		chat.WithLanguage(cfg.Chat.Language),
		chat.WithCredential(cfg.Chat.OpenAIKey),
		chat.WithStore(store))

	renderer := page.NewRenderer(client, searchCtrl, chatSession, logger)
	actions := page.NewActions(renderer)

	srv := server.New(cfg.Server.Port, logger)

	srv.Router.Get("/", renderer.Handler())
	srv.Router.HandleFunc(proxy.MountPrefix+"/*", forwarder.Handler())
	srv.Router.Post("/ui/search", actions.SearchInput)
	srv.Router.Post("/ui/search/submit", actions.SearchSubmit)
	srv.Router.Get("/ui/search", actions.SearchState)
	srv.Router.Post("/ui/search/select", actions.SearchSelect)
	srv.Router.Post("/ui/search/blur", actions.SearchBlur)
	srv.Router.Post("/ui/chat", actions.ChatSend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-sigChan:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func newTranscriptStore(cfg *config.Config) (storage.TranscriptStore, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return sqlite.New(cfg.Storage.SQLite.Path)
	default:
		return memory.New(), nil
	}
}
