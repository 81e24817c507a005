package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"novel/internal/config"
	"novel/internal/docstore"
	"novel/internal/functions"
)

func main() {
	cfg, err := config.LoadFunctions()
	if err != nil {
		log.Fatal(err)
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatal(err)
	}
	store, err := docstore.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	logger := log.New(os.Stderr, "functions: ", log.LstdFlags)
	router := functions.NewRouter(functions.NewService(store, logger), os.Stdout)

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()
	log.Printf("callables on %s (db %s)", cfg.Addr, cfg.DBPath)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
