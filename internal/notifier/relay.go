package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"secondhand-market/internal/pkg/clock"
	"secondhand-market/internal/pkg/config"
	"secondhand-market/internal/usecase/shared"

	"github.com/IBM/sarama"
	"golang.org/x/sync/errgroup"
)

// Relay drains the notification outbox and publishes each job to Kafka.
// Publication happens after the trade transaction committed, so a broker
// outage delays delivery but can never abort a trade transition. Claiming
// uses SKIP LOCKED, so multiple workers (or instances) share the queue.
type Relay struct {
	uow      shared.UnitOfWork
	producer sarama.SyncProducer
	topic    string
	cfg      config.NotifierConfig
	clock    clock.Clock
}

func NewRelay(uow shared.UnitOfWork, producer sarama.SyncProducer, kafkaCfg config.KafkaConfig, cfg config.NotifierConfig, clk clock.Clock) *Relay {
	return &Relay{
		uow:      uow,
		producer: producer,
		topic:    kafkaCfg.Topic,
		cfg:      cfg,
		clock:    clk,
	}
}

type notificationEvent struct {
	JobID       string `json:"job_id"`
	RecipientID string `json:"recipient_id"`
	SubjectID   string `json:"subject_id"`
	SubjectType string `json:"subject_type"`
	Message     string `json:"message"`
}

// Run blocks until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Workers; i++ {
		worker := i
		g.Go(func() error {
			return r.loop(ctx, worker)
		})
	}
	return g.Wait()
}

func (r *Relay) loop(ctx context.Context, worker int) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				slog.Error("notification relay pass failed", "worker", worker, "error", err.Error())
			}
		}
	}
}

// drainOnce claims one batch and publishes it. The claim and the
// sent/failed bookkeeping share a transaction; a crash mid-pass releases
// the claimed rows untouched.
func (r *Relay) drainOnce(ctx context.Context) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimPending(ctx, tx.DB(), r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if pubErr := r.publish(job); pubErr != nil {
				slog.Warn("failed to publish notification",
					"job_id", job.ID,
					"attempts", job.Attempts+1,
					"error", pubErr.Error())

				retryAt := r.clock.Now().Add(r.retryDelay(job.Attempts))
				if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, pubErr.Error(), retryAt, r.cfg.MaxAttempts); err != nil {
					return err
				}
				continue
			}

			if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Relay) publish(job shared.NotificationJob) error {
	payload, err := json.Marshal(notificationEvent{
		JobID:       job.ID.String(),
		RecipientID: job.RecipientID.String(),
		SubjectID:   job.SubjectID.String(),
		SubjectType: job.SubjectType,
		Message:     job.Message,
	})
	if err != nil {
		return err
	}

	_, _, err = r.producer.SendMessage(&sarama.ProducerMessage{
		Topic: r.topic,
		Key:   sarama.StringEncoder(job.RecipientID.String()),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (r *Relay) retryDelay(attempts int32) time.Duration {
	delay := time.Duration(1<<attempts) * time.Second
	if delay > time.Minute {
		delay = time.Minute
	}
	return delay
}
