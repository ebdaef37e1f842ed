package bootstrap

import (
	"context"

	"secondhand-market/internal/pkg/config"
	"secondhand-market/pkg/kafka"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewProducer,
	),
)

func NewProducer(lc fx.Lifecycle, cfg config.Config) (sarama.SyncProducer, error) {
	producer, err := kafka.NewSyncProducer(kafka.Config{Addrs: cfg.Kafka.Brokers})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}
