package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	victorybot "github.com/VickGidi/Victory-furniture-bot"
	"github.com/VickGidi/Victory-furniture-bot/internal/bot"
	"github.com/VickGidi/Victory-furniture-bot/internal/handlers"
	"github.com/VickGidi/Victory-furniture-bot/internal/kb"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	base, err := loadKnowledgeBase(cfg)
	if err != nil {
		log.Fatal(fmt.Errorf("error loading knowledge base: %w", err))
	}
	logger.Info("Knowledge base loaded",
		slog.Int("products", len(base.Products)),
		slog.Int("branches", len(base.Branches)))

	fallback, err := cfg.fallbackLLM(logger)
	if err != nil {
		log.Fatal(fmt.Errorf("error configuring fallback llm: %w", err))
	}

	opts := []bot.Option{bot.WithLogger(logger)}
	if fallback != nil {
		opts = append(opts, bot.WithFallback(fallback))
		logger.Info("Fallback LLM enabled", slog.String("provider", cfg.FallbackLLM.Provider))
	}
	engine := bot.NewEngine(base, opts...)

	m, err := handlers.NewMain(engine, logger)
	if err != nil {
		log.Fatal(fmt.Errorf("error creating handlers: %w", err))
	}

	// Serve static files
	staticFS, err := fs.Sub(victorybot.StaticFS, "static")
	if err != nil {
		log.Fatal(err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	// Create custom mux
	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))
	mux.HandleFunc("/", m.HandleHome)
	mux.HandleFunc("/api/chat", m.HandleChat)

	// Create custom server
	srv := &http.Server{
		Addr:              ":" + cfg.port(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.port()))
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt/terminate signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking select waiting for either interrupt or server error
	select {
	case err := <-serverErrors:
		logger.Error("Server error", slog.String("err", err.Error()))

	case sig := <-shutdown:
		logger.Info("Start shutdown", slog.String("signal", sig.String()))

		// Create context with timeout for shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", slog.String("err", err.Error()))
			if err := srv.Close(); err != nil {
				logger.Error("Forcing server close", slog.String("err", err.Error()))
			}
		}
	}
}

// loadConfig reads config.yaml from the user config dir. A missing file is not an error; the
// defaults serve a plain deterministic bot on port 5000.
func loadConfig() (config, error) {
	cfg := config{}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return cfg, fmt.Errorf("error getting user config dir: %w", err)
	}
	cfgPath := filepath.Join(cfgDir, "victorybot")
	if err := os.MkdirAll(cfgPath, 0755); err != nil {
		return cfg, fmt.Errorf("error creating config directory: %w", err)
	}

	cfgFile, err := os.Open(filepath.Join(cfgPath, "config.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error opening config file: %w", err)
	}
	defer cfgFile.Close()

	if err := yaml.NewDecoder(cfgFile).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("error decoding config file: %w", err)
	}
	return cfg, nil
}

func loadKnowledgeBase(cfg config) (*kb.KnowledgeBase, error) {
	if cfg.KnowledgeBase != "" {
		return kb.Load(cfg.KnowledgeBase)
	}
	return kb.Parse(victorybot.DefaultKnowledgeBase)
}
