package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"secondhand-market/internal/notifier"
	"secondhand-market/internal/pkg/clock"
	"secondhand-market/internal/pkg/config"
	"secondhand-market/internal/usecase/shared"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewRelay,
	),
	fx.Invoke(
		runRelay,
	),
)

func NewRelay(uow shared.UnitOfWork, producer sarama.SyncProducer, cfg config.Config, clk clock.Clock) *notifier.Relay {
	return notifier.NewRelay(uow, producer, cfg.Kafka, cfg.Notifier, clk)
}

func runRelay(lc fx.Lifecycle, relay *notifier.Relay, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("notification relay exited", "error", err)
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
