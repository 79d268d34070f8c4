// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/pressly/goose/v3"

	"github.com/yclin/travel-planner/internal/config"
	"github.com/yclin/travel-planner/internal/docstore"
	"github.com/yclin/travel-planner/internal/handler"
	"github.com/yclin/travel-planner/internal/middleware"
	"github.com/yclin/travel-planner/internal/repo"
	"github.com/yclin/travel-planner/internal/service"
	"github.com/yclin/travel-planner/migrations"
)

// maxBodySize caps incoming request bodies. Import documents are the largest
// payloads; 5 MiB covers even multi-year trips with room to spare.
const maxBodySize = 5 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("store ready", "backend", cfg.StoreBackend)

	// --- Services ---------------------------------------------------------
	trips := service.NewTripService(store)
	days := service.NewDayService(store)
	events := service.NewEventService(store)
	tasks := service.NewTaskService(store)
	members := service.NewMemberService(store)
	checklists := service.NewChecklistService(store)
	stats := service.NewStatsService(trips)
	porter := service.NewExportService(trips, days, events, tasks, members, checklists)

	// The document backing is single-trip: make sure a trip exists so the
	// UI always has something to open.
	if cfg.StoreBackend == config.BackendDocument {
		trip, err := trips.EnsureDefaultTrip(context.Background())
		if err != nil {
			slog.Error("failed to ensure default trip", "error", err)
			os.Exit(1)
		}
		slog.Info("default trip ready", "trip_id", trip.ID)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body size cap. Recoverer catches panics and returns HTTP 500
	// instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	server := handler.NewServer(trips, days, events, tasks, members, checklists, stats, porter)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore builds the configured store backing and returns it along with a
// close function for deferred cleanup.
func openStore(cfg config.Config, logger *slog.Logger) (repo.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendDocument:
		ds, err := docstore.Open(cfg.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return ds, func() {
			if err := ds.Close(); err != nil {
				slog.Error("document store close error", "error", err)
			}
		}, nil

	default: // config.BackendPostgres — config.Load rejects anything else
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo.NewPostgresStore(pool), pool.Close, nil
	}
}

// migrate applies pending schema migrations via goose. It uses a separate
// database/sql connection because goose does not speak the pgx pool API.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
