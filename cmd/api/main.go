// Package main is the entry point for the Tripdeck API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/nvalette/tripdeck/backend/internal/assistant"
	"github.com/nvalette/tripdeck/backend/internal/config"
	"github.com/nvalette/tripdeck/backend/internal/handler"
	"github.com/nvalette/tripdeck/backend/internal/itinerary"
	"github.com/nvalette/tripdeck/backend/internal/middleware"
	"github.com/nvalette/tripdeck/backend/internal/repo"
	"github.com/nvalette/tripdeck/backend/internal/repo/memory"
	"github.com/nvalette/tripdeck/backend/internal/service"
	"github.com/nvalette/tripdeck/backend/migrations"
)

// demoUserID is the fixed identity every request runs as when JWT_SECRET is
// not configured. The memory gateway's fixtures are seeded under it.
var demoUserID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// maxBodyBytes limits request bodies; document uploads are the largest
// legitimate payload (a base64-encoded ticket scan).
const maxBodyBytes int64 = 10 << 20

func main() {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

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

	// --- Retrieval gateway ------------------------------------------------
	// DATABASE_URL selects the Postgres gateway; without it the server runs
	// in demo mode against the seeded in-memory gateway. The choice is made
	// once here and injected — nothing downstream branches on configuration.
	var (
		tripRepo repo.TripRepo
		itemRepo repo.ItemRepo
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		// Verify the DB is reachable before accepting traffic.
		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := runMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		tripRepo = repo.NewTripRepo(pool)
		itemRepo = repo.NewItemRepo(pool)
	} else {
		store := memory.NewStore()
		if err := store.Seed(demoUserID); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("no DATABASE_URL set, running in demo mode with in-memory data")

		tripRepo = store.Trips()
		itemRepo = store.Items()
	}

	// --- Assistant port ---------------------------------------------------
	var port service.AdvicePort
	if cfg.GeminiAPIKey != "" {
		port = assistant.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set, assistant endpoints will return 503")
	}

	// --- Services ---------------------------------------------------------
	tripSvc := service.NewTripService(tripRepo)
	itemSvc := service.NewItemService(tripRepo, itemRepo)
	itinerarySvc := service.NewItineraryService(tripRepo, itemRepo, itinerary.Options{})
	assistantSvc := service.NewAssistantService(itinerarySvc, itemSvc, port)
	statsSvc := service.NewStatsService(tripRepo, itemRepo)
	exportSvc := service.NewExportService(tripRepo, itemRepo)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → auth. Recoverer catches panics and returns 500
	// instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))
	r.Use(middleware.NewAuth(cfg.JWTSecret, demoUserID))

	srv := handler.NewServer(tripSvc, itemSvc, itinerarySvc, assistantSvc, statsSvc, exportSvc)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // assistant calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending goose migrations from the embedded FS.
// It uses a short-lived database/sql connection because goose speaks
// database/sql, not pgx pools.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
