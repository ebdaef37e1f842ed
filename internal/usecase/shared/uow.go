package shared

import (
	"context"
	"time"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Products() ProductRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	HasActiveReservation(ctx context.Context, buyerID, productID uuid.UUID) (bool, error)
}

// Minimal snapshots for command read operations

// UserSnapshot is what the participant directory exposes to the core.
type UserSnapshot struct {
	ID       uuid.UUID
	Nickname string
}

// ProductSnapshot carries the two availability flags the lifecycle manager
// owns, plus the fields notifications are composed from.
type ProductSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Reserved  bool
	Completed bool
}

type ReservationSnapshot struct {
	ID        uuid.UUID
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
	ProductID uuid.UUID
	Status    trade.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *trade.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status trade.Status) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

// ProductRepository is the write side of the product availability store.
// The lifecycle manager is the only writer of these flags.
type ProductRepository interface {
	SaveFlags(ctx context.Context, tx db.DBTX, id uuid.UUID, reserved, completed *bool) error
}

// NotificationJob is one enqueued outbox row awaiting publication.
type NotificationJob struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	SubjectID   uuid.UUID
	SubjectType string
	Message     string
	Attempts    int32
}

// NotificationRepository enqueues outbox jobs; a relay publishes them after
// commit, so a broker failure never aborts a trade transition.
type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, recipientID, subjectID uuid.UUID, subjectType, message string, runAt time.Time) error
	ClaimPending(ctx context.Context, tx db.DBTX, limit int32) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, retryAt time.Time, maxAttempts int32) error
}
