package worker

// maintenance_cron.go
// Background goroutine that periodically sweeps recurring maintenance
// schedules whose next_run_at has passed, spawning maintenance rows and
// advancing each schedule to its next occurrence.

import (
	"context"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/rs/zerolog/log"
)

// StartMaintenanceCron launches a background goroutine that ticks on the
// configured interval and runs the due-schedule sweep. It respects the
// context for graceful shutdown.
func StartMaintenanceCron(ctx context.Context, svc service.MaintenanceService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("maintenance_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("maintenance_cron: shutting down")
				return
			case <-ticker.C:
				spawned, err := svc.RunDueSchedules(ctx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("maintenance_cron: sweep failed")
					continue
				}
				if spawned > 0 {
					log.Info().Int("spawned", spawned).Msg("maintenance_cron: spawned maintenance from schedules")
				}
			}
		}
	}()
}
