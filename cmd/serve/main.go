// Command serve exposes the image generation gateway over HTTP: one POST
// endpoint per provider with a uniform JSON contract, plus the provider
// catalog for UI selectors.
//
// Configuration is via environment variables (a .env file is honored):
//
//	IMAGO_PORT            - Server port (default: 8080)
//	IMAGO_LOG_LEVEL       - debug, info, warn, error (default: info)
//	IMAGO_REQUEST_TIMEOUT - Per-request deadline (default: 40s)
//	XAI_API_KEY           - xAI API key
//	GEMINI_API_KEY        - Google Gemini API key
//	TOGETHER_API_KEY      - Together API key
//	RUNWARE_API_KEY       - Runware API key
//
// Providers with no key configured fail their own dispatches with a
// configuration error; the rest keep serving. Pollinations needs no key.
//
// Usage:
//
//	go run ./cmd/serve
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spetersoncode/imago/client"
)

func main() {
	cfg := LoadConfig()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			XAI:      cfg.XAIKey,
			Google:   cfg.GoogleKey,
			Together: cfg.TogetherKey,
			Runware:  cfg.RunwareKey,
		},
	})

	mux := http.NewServeMux()
	mux.Handle("POST /api/generate/{provider}", NewGenerateHandler(c, cfg.RequestTimeout))
	mux.HandleFunc("GET /api/providers", ProvidersHandler)
	mux.HandleFunc("GET /health", healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("gateway starting",
		"port", cfg.Port,
		"endpoint", "POST /api/generate/{provider}",
		"timeout", cfg.RequestTimeout,
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
