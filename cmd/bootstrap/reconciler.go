package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"booking-board/internal/pkg/config"
	"booking-board/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReconcilerModule = fx.Module("reconciler",
	fx.Invoke(StartLockReconciler),
)

// StartLockReconciler runs the periodic projection sweep. Reservations expire
// by the clock, not by a write, so a ticker is the only way interval
// boundaries get observed when traffic is idle.
func StartLockReconciler(lc fx.Lifecycle, reconciler commands.LockReconciler, cfg config.Config, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			interval := cfg.Engine.ReconcileInterval
			if interval <= 0 {
				interval = 30 * time.Second
			}

			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if err := reconciler.Tick(ctx); err != nil {
							logger.Error("lock reconcile tick failed", "error", err)
						}
					}
				}
			}()

			logger.Info("lock reconciler started", "interval", interval.String())
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
