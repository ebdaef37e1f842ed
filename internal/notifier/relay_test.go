//go:build unit

package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"secondhand-market/internal/pkg/clock"
	"secondhand-market/internal/pkg/config"
	"secondhand-market/internal/usecase/shared"
	sharedmock "secondhand-market/tests/mock/shared"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RelayTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	notifications *sharedmock.MockNotificationRepository
	producer      *mocks.SyncProducer
	clock         *clock.MockClock
	relay         *Relay
}

func (s *RelayTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.tx = sharedmock.NewMockTx(s.mockCtrl)
	s.notifications = sharedmock.NewMockNotificationRepository(s.mockCtrl)

	producerCfg := sarama.NewConfig()
	producerCfg.Producer.Return.Successes = true
	s.producer = mocks.NewSyncProducer(s.T(), producerCfg)

	s.clock = clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	s.tx.EXPECT().Notifications().Return(s.notifications).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()

	s.relay = NewRelay(s.uow, s.producer,
		config.KafkaConfig{Topic: "trade-notifications"},
		config.NotifierConfig{PollInterval: time.Second, BatchSize: 10, MaxAttempts: 5, Workers: 1},
		s.clock)
}

func (s *RelayTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.producer.Close())
}

func TestRelaySuite(t *testing.T) {
	suite.Run(t, new(RelayTestSuite))
}

func (s *RelayTestSuite) job() shared.NotificationJob {
	return shared.NotificationJob{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		SubjectID:   uuid.New(),
		SubjectType: "reservation",
		Message:     "seller-hanako accepted your trade request.",
	}
}

func (s *RelayTestSuite) TestDrainOnce() {
	s.Run("publishes each claimed job and marks it sent", func() {
		first := s.job()
		second := s.job()

		s.notifications.EXPECT().ClaimPending(gomock.Any(), gomock.Any(), int32(10)).
			Return([]shared.NotificationJob{first, second}, nil)

		for _, job := range []shared.NotificationJob{first, second} {
			want := job
			s.producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(payload []byte) error {
				var event notificationEvent
				if err := json.Unmarshal(payload, &event); err != nil {
					return err
				}
				if event.JobID != want.ID.String() {
					return errors.New("unexpected job id: " + event.JobID)
				}
				if event.RecipientID != want.RecipientID.String() || event.Message != want.Message {
					return errors.New("event does not match job")
				}
				return nil
			})
			s.notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), job.ID).Return(nil)
		}

		s.NoError(s.relay.drainOnce(context.Background()))
	})

	s.Run("publish failure marks the job failed with a backoff", func() {
		job := s.job()
		job.Attempts = 2

		s.notifications.EXPECT().ClaimPending(gomock.Any(), gomock.Any(), int32(10)).
			Return([]shared.NotificationJob{job}, nil)
		s.producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		wantRetryAt := s.clock.Now().Add(4 * time.Second)
		s.notifications.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), job.ID, gomock.Any(), wantRetryAt, int32(5)).Return(nil)

		s.NoError(s.relay.drainOnce(context.Background()))
	})

	s.Run("a failed job does not block the rest of the batch", func() {
		bad := s.job()
		good := s.job()

		s.notifications.EXPECT().ClaimPending(gomock.Any(), gomock.Any(), int32(10)).
			Return([]shared.NotificationJob{bad, good}, nil)
		s.producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		s.notifications.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), bad.ID, gomock.Any(), gomock.Any(), int32(5)).Return(nil)
		s.producer.ExpectSendMessageAndSucceed()
		s.notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), good.ID).Return(nil)

		s.NoError(s.relay.drainOnce(context.Background()))
	})

	s.Run("empty batch publishes nothing", func() {
		s.notifications.EXPECT().ClaimPending(gomock.Any(), gomock.Any(), int32(10)).Return(nil, nil)
		s.NoError(s.relay.drainOnce(context.Background()))
	})
}

func (s *RelayTestSuite) TestRetryDelay() {
	s.Equal(time.Second, s.relay.retryDelay(0))
	s.Equal(2*time.Second, s.relay.retryDelay(1))
	s.Equal(32*time.Second, s.relay.retryDelay(5))
	s.Equal(time.Minute, s.relay.retryDelay(10), "delay is capped at one minute")
}
