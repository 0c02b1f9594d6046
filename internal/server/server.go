// Package server boots the whole process: config, logging sinks, the
// document store with its durable slot, background workers, and the HTTP
// and gRPC listeners.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/digiteria/app/jobs"
	"github.com/shashiranjanraj/digiteria/app/routes"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/internal/kernel"
	"github.com/shashiranjanraj/digiteria/pkg/cache"
	"github.com/shashiranjanraj/digiteria/pkg/database"
	"github.com/shashiranjanraj/digiteria/pkg/grpc"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/notification"
	"github.com/shashiranjanraj/digiteria/pkg/queue"
	"github.com/shashiranjanraj/digiteria/pkg/schedule"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
	"github.com/shashiranjanraj/digiteria/pkg/storage"
	"github.com/shashiranjanraj/digiteria/pkg/ws"
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	setupLogSinks()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs the cache, sessions, and — when available — the queue.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, cache and sessions degrade to no-ops", "error", err)
	}
	storage.Connect()
	notification.SetSlackWebhook(config.SlackWebhook())

	// The document store and its durable slot.
	s, err := slot.Open()
	if err != nil {
		return fmt.Errorf("server: open slot: %w", err)
	}
	st := store.Open(s)
	defer st.Close()

	// Background workers.
	jobs.Register()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if database.DB != nil {
		queue.UseDB(database.DB)
	}
	queue.StartWorkers(ctx, 4)

	registerScheduledTasks(st)
	schedule.Start(ctx)

	// Change hub: one JSON frame to every websocket client per store save.
	hub := ws.NewHub()
	go hub.Run()
	st.Subscribe(func() {
		frame, err := json.Marshal(map[string]any{
			"event": "change",
			"stats": st.Stats(),
			"at":    time.Now().UTC(),
		})
		if err != nil {
			return
		}
		// Never let a slow hub stall the mutation path.
		select {
		case hub.Broadcast <- frame:
		default:
		}
	})

	// Optional gRPC listener (health + reflection).
	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := grpc.Start(port)
		if err != nil {
			return err
		}
		defer grpc.Stop(grpcSrv)
	}

	handler := kernel.Build(routes.Deps{
		Store:    st,
		Hub:      hub,
		Payments: services.ResolvePaymentProvider(),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// setupLogSinks attaches the async Mongo handler next to the default text
// handler when MONGO_LOG_URI is configured.
func setupLogSinks() {
	uri := config.MongoLogURI()
	if uri == "" {
		return
	}

	h, err := logger.NewMongoHandler(uri, config.MongoLogDB(), config.MongoLogCollection())
	if err != nil {
		logger.Warn("server: mongo log sink unavailable", "error", err)
		return
	}
	logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), h))
}

// registerScheduledTasks wires the recurring maintenance work.
func registerScheduledTasks(st *store.Store) {
	// Nightly document snapshot to the storage disk, for point-in-time
	// recovery of the single-document store.
	schedule.Cron("0 3 * * *").Name("store.snapshot").Run(func() {
		doc := st.Document()
		payload, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			logger.Error("snapshot: marshal failed", "error", err)
			return
		}
		path := fmt.Sprintf("snapshots/%s.json", time.Now().UTC().Format("2006-01-02"))
		if err := storage.Put(path, payload); err != nil {
			logger.Error("snapshot: write failed", "path", path, "error", err)
			return
		}
		logger.Info("snapshot: written", "path", path, "bytes", len(payload))
	})

	// Hourly stats line in the logs; doubles as a liveness breadcrumb.
	schedule.Hourly().Name("stats.report").Run(func() {
		s := st.Stats()
		logger.Info("stats: hourly report",
			"active_users", s.ActiveUsers,
			"products_sold", s.ProductsSold,
			"creator_earnings", s.CreatorEarnings,
			"avg_rating", s.AvgRating)
	})
}
