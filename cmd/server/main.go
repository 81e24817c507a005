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

	"novel/internal/assets"
	"novel/internal/callable"
	"novel/internal/catalog"
	"novel/internal/config"
	"novel/internal/savegame"
	"novel/internal/session"
	"novel/internal/web"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := callable.NewClient(cfg.FunctionsURL, cfg.CallTimeout)
	if err := client.Healthy(ctx); err != nil {
		log.Printf("functions backend at %s: %v", cfg.FunctionsURL, err)
	}

	loader := &catalog.Loader{Source: client, Scenario: cfg.Scenario}
	cat, err := loader.Load(ctx, cfg.Tenant)
	if err != nil {
		log.Fatalf("tenant %s: %v", cfg.Tenant, err)
	}
	log.Printf("tenant %s: loaded %d commands, %d characters", cfg.Tenant, cat.Len(), len(cat.Characters))

	tmpl, err := web.ParseTemplates(cfg.TemplatesDir)
	if err != nil {
		log.Fatal(err)
	}

	store := session.NewMemoryStore[*web.Play]()
	go store.RunSweeper(ctx, time.Minute, cfg.SessionIdle, func(n int) {
		log.Printf("dropped %d idle sessions", n)
	})

	srv := &web.Server{
		Catalog:  cat,
		Assets:   assets.NewResolver(cfg.AssetBaseURL),
		Gateway:  &savegame.Gateway{Caller: client},
		Store:    store,
		Tmpl:     tmpl,
		Tenant:   cfg.Tenant,
		MediaDir: cfg.MediaDir,
		Logger:   logger,
	}

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
