// Command linguad serves the extraction pipeline over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmsdko/lingua/internal/app"
	"github.com/cmsdko/lingua/internal/config"
	"github.com/cmsdko/lingua/pkg/logger"
	"github.com/rs/cors"
)

func main() {
	configPath := flag.String("config", os.Getenv("LINGUA_CONFIG"), "YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("error", "text").Fatal("load config", "error", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format).WithComponent("linguad")

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal("build pipeline", "error", err)
	}
	h := newAPIHandler(a.Extractor, a.Provider, log)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           c.Handler(h.router()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Extraction over a remote model can take as long as the NLP timeout.
		WriteTimeout:   cfg.NLP.Timeout + 30*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	log.Info("listening", "addr", cfg.Server.Addr, "provider", cfg.NLP.Provider)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("serve", "error", err)
	}
	log.Info("stopped")
}
