package worker

// wms_cron.go
// Background goroutine that runs the availability checker for every company
// on a fixed interval, in addition to the HTTP cron endpoint. A failed run
// for one company never stops the sweep.

import (
	"context"
	"time"

	"github.com/tettoewai/restaurant-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WMSCronConfig holds all dependencies for the checker goroutine. RunCheck is
// injected by the composition root to keep this package free of the service
// layer.
type WMSCronConfig struct {
	Interval time.Duration
	WMSRepo  repository.WMSRepository
	RunCheck func(ctx context.Context, companyID uuid.UUID) error
}

// StartWMSCron launches a background goroutine that ticks every
// cfg.Interval and sweeps all companies through the availability checker.
// It respects the context for graceful shutdown.
func StartWMSCron(ctx context.Context, cfg WMSCronConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("wms_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("wms_cron: shutting down")
				return
			case <-ticker.C:
				sweep(ctx, cfg)
			}
		}
	}()
}

func sweep(ctx context.Context, cfg WMSCronConfig) {
	companies, err := cfg.WMSRepo.ListCompanyIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("wms_cron: failed to list companies")
		return
	}
	for _, companyID := range companies {
		if err := cfg.RunCheck(ctx, companyID); err != nil {
			log.Error().Err(err).Str("company_id", companyID.String()).
				Msg("wms_cron: check failed")
		}
	}
}
