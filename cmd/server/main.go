package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zion-impact-fm/internal/api"
	"zion-impact-fm/internal/config"
	"zion-impact-fm/internal/page"
	"zion-impact-fm/internal/player"
	"zion-impact-fm/internal/site"
	"zion-impact-fm/internal/web"
)

func main() {
	cfgPath := os.Getenv("ZION_CONFIG")
	if cfgPath == "" {
		cfgPath = "zion.yml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	doc, err := page.Default()
	if err != nil {
		log.Fatalf("Failed to load page: %v", err)
	}

	client := api.NewClient(cfg.APIBase, nil, cfg.RequestTimeout)
	// The stream never ends, so its client has no overall timeout.
	handle := player.NewStreamHandle(cfg.StreamURL, &http.Client{}, nil)

	s, err := site.New(cfg, doc, client, handle)
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	mux := http.NewServeMux()
	web.New(s).RegisterRoutes(mux)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on %s", cfg.ListenAddr)
	log.Printf("API base: %s", cfg.APIBase)
	log.Printf("Stream: %s", cfg.StreamURL)
	log.Printf("Refresh targets: %d", len(s.Registry.Targets()))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	handle.Pause()
	<-done
}
