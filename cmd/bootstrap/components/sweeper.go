package components

import (
	"context"
	"log/slog"
	"time"

	"hall-booking/internal/pkg/config"
	"hall-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

// SweeperModule runs background housekeeping: confirmed bookings whose
// window has elapsed are persisted as completed, and idempotency keys
// past their replay horizon are dropped. Reads already derive completion
// lazily, so sweep cadence is not correctness critical.
var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

func StartSweeper(lc fx.Lifecycle, cfg config.Config, cmds commands.BookingCommands) {
	interval := cfg.Booking.SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := cmds.SweepCompleted(ctx)
						if err != nil {
							slog.Warn("completion sweep failed", "error", err)
							continue
						}
						if n > 0 {
							slog.Info("completion sweep", "completed", n)
						}
						pruned, err := cmds.PruneIdempotencyKeys(ctx)
						if err != nil {
							slog.Warn("idempotency key prune failed", "error", err)
							continue
						}
						if pruned > 0 {
							slog.Info("idempotency key prune", "deleted", pruned)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
