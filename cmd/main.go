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

	"flaskr/internal/config"
	"flaskr/internal/storage"
	"flaskr/internal/web"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	setupLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entries, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer entries.Close()

	pages, err := web.LoadPages()
	if err != nil {
		log.Fatal(err)
	}

	sessionStore, err := web.NewSessionStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	app := &web.App{
		Entries: entries,
		Store:   sessionStore,
		Pages:   pages,
		Config:  cfg,
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting server", "addr", cfg.Addr, "store", cfg.StoreDriver, "key", cfg.EntriesKey, "debug", cfg.Debug)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server stopped", "error", err)
		return
	}
	slog.Info("Server stopped")
}

func setupLogger(debug bool) {
	var handler slog.Handler
	if debug {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
