/*
main.go - Application entry point

PURPOSE:

	Initializes and starts the calendar engine server. Handles
	configuration, provider registration, and graceful shutdown.

STARTUP SEQUENCE:
 1. Parse command-line flags
 2. Load YAML configuration
 3. Open the event store (SQLite or PostgreSQL)
 4. Build the period factory from timezone/week-start settings
 5. Register providers (store first, then one per ICS source)
 6. Start the ICS refresh schedule
 7. Start server with graceful shutdown

COMMAND-LINE FLAGS:

	-config  YAML config path (default: calendar.yaml; missing file
	         falls back to built-in defaults)
	-listen  Listen address override
	-db      SQLite database path override (":memory:" supported)

GRACEFUL SHUTDOWN:

	On SIGINT/SIGTERM:
	1. Stop the refresh schedule
	2. Stop accepting new connections
	3. Wait for active requests to complete (30s timeout)
	4. Close the store

SEE ALSO:
  - config/config.go: Configuration model
  - api/server.go: Router configuration
*/
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

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/meridian/calendar-engine/api"
	"github.com/meridian/calendar-engine/calendar"
	"github.com/meridian/calendar-engine/config"
	"github.com/meridian/calendar-engine/provider"
	"github.com/meridian/calendar-engine/provider/ics"
	"github.com/meridian/calendar-engine/store/postgres"
	"github.com/meridian/calendar-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "calendar.yaml", "YAML config path")
	listen := flag.String("listen", "", "listen address override")
	dbPath := flag.String("db", "", "SQLite database path override")
	flag.Parse()

	zlog, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalw("config load failed", "path", *configPath, "err", err)
		}
		cfg = config.Default()
		logger.Infow("no config file, using defaults", "path", *configPath)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.Database = config.Database{Driver: "sqlite", Path: *dbPath}
	}

	// Event store
	var store api.EventStore
	var closeStore func() error
	ctx := context.Background()

	switch cfg.Database.Driver {
	case "postgres":
		pg, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			logger.Fatalw("postgres init failed", "err", err)
		}
		store, closeStore = pg, pg.Close
	default:
		sq, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			logger.Fatalw("sqlite init failed", "path", cfg.Database.Path, "err", err)
		}
		store, closeStore = sq, sq.Close
	}
	defer closeStore()

	// Period factory
	firstWeekday, err := cfg.FirstWeekday()
	if err != nil {
		logger.Fatalw("invalid week_start", "err", err)
	}
	location, err := cfg.Location()
	if err != nil {
		logger.Fatalw("invalid timezone", "err", err)
	}
	factory := &calendar.Factory{FirstWeekday: firstWeekday, Location: location}

	// Providers: store first, then one per ICS source aliased by source ID.
	manager := provider.NewManager()
	manager.Register(provider.NewStoreProvider(store), "store")

	var feeds []*ics.Provider
	for _, src := range cfg.Sources {
		p := ics.New(ics.Source{ID: src.ID, Name: src.Name, URL: src.URL}, logger)
		manager.Register(p, src.ID)
		feeds = append(feeds, p)
	}

	refreshAll := func() {
		for _, p := range feeds {
			refreshCtx, cancel := context.WithTimeout(ctx, time.Minute)
			if err := p.Refresh(refreshCtx); err != nil {
				logger.Errorw("ics refresh failed", "source", p.Source().ID, "err", err)
			}
			cancel()
		}
	}

	// Initial load, then the configured schedule.
	if len(feeds) > 0 {
		refreshAll()
	}
	schedule := cron.New()
	if cfg.RefreshCron != "" && len(feeds) > 0 {
		if _, err := schedule.AddFunc(cfg.RefreshCron, refreshAll); err != nil {
			logger.Fatalw("invalid refresh schedule", "cron", cfg.RefreshCron, "err", err)
		}
		schedule.Start()
	}

	handler := api.NewHandler(factory, manager, store, logger)
	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: api.NewRouter(handler),
	}

	go func() {
		logger.Infow("server listening", "addr", cfg.Listen, "providers", manager.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server failed", "err", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	schedule.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("shutdown incomplete", "err", err)
	}
}
