package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/config"
	"github.com/tettoewai/restaurant-pos-sub001/internal/infra"
	"github.com/tettoewai/restaurant-pos-sub001/internal/realtime"
	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"
	"github.com/tettoewai/restaurant-pos-sub001/internal/router"
	"github.com/tettoewai/restaurant-pos-sub001/internal/service"
	"github.com/tettoewai/restaurant-pos-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async infrastructure shared between the HTTP surface and the workers.
	// The composition root owns everything with a lifecycle.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	publisher := realtime.NewPublisher(rdb)
	hub := realtime.NewHub(publisher)

	// The availability checker is shared by the HTTP endpoints and the
	// in-process scheduler, so it is built here rather than in the router.
	wmsRepo := repository.NewWMSRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	wmsSvc := service.NewWMSService(wmsRepo, menuRepo, warehouseRepo, dispatcher)

	// Worker pool — alert emails dequeued from Redis, sent behind a circuit
	// breaker so a dead SMTP relay cannot pile up goroutines.
	handlers := map[string]worker.Handler{
		"alert": worker.NewAlertWorker(mailer, smtpCB, cfg.AlertEmailTo),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// In-process scheduler sweeping every tenant a few times a day.
	worker.StartWMSCron(ctx, worker.WMSCronConfig{
		Interval: time.Duration(cfg.WMSCheckIntervalHours) * time.Hour,
		WMSRepo:  wmsRepo,
		RunCheck: func(ctx context.Context, companyID uuid.UUID) error {
			_, err := wmsSvc.RunScheduled(ctx, companyID)
			return err
		},
	})

	r := router.New(cfg, db, rdb, publisher, hub, wmsSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("tably backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
