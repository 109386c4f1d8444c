package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/memberscorner/cliparse"
	"github.com/danielhkuo/memberscorner/corner"
	"github.com/danielhkuo/memberscorner/db"
	"github.com/danielhkuo/memberscorner/db/firestoredb"
	"github.com/danielhkuo/memberscorner/router"
	"github.com/danielhkuo/memberscorner/store"
)

const (
	feedReadyTimeout = 15 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Connect to the collection store
	backend, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store connection failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Store ready", "backend", cfg.Backend, "app_id", cfg.AppID)

	st := store.Instrument(backend, reg)

	activity := corner.NewActivityLogger(st, reg)
	svc := corner.NewService(st, activity)
	feed := corner.NewFeed(st)

	feedCtx, cancelFeed := context.WithCancel(ctx)
	feedDone := make(chan error, 1)
	go func() {
		feedDone <- feed.Run(feedCtx)
	}()

	select {
	case <-feed.Ready():
		slog.Info("Board loaded")
	case err := <-feedDone:
		slog.Error("feed failed to start", "error", err)
		cancelFeed()
		os.Exit(1)
	case <-time.After(feedReadyTimeout):
		slog.Warn("board not loaded yet, serving empty board until it is")
	}

	// Create server
	server := http.Server{
		Handler:     router.NewRouter(svc, feed, cfg, reg),
		Addr:        ":" + strconv.Itoa(cfg.Port),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	cancelFeed()
	if err := <-feedDone; err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("feed stopped", "error", err)
	}
	activity.Wait()
}

// openStore connects the backend named by cfg.Backend.
func openStore(ctx context.Context, cfg cliparse.Config) (store.Store, error) {
	if cfg.Backend == cliparse.BackendFirestore {
		fs, err := firestoredb.Connect(ctx, firestoredb.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
			AppID:           cfg.AppID,
		})
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	dialect, err := db.ParseDialect(cfg.Backend)
	if err != nil {
		return nil, err
	}

	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	return db.NewDocumentStore(conn, dialect, cfg.AppID), nil
}
