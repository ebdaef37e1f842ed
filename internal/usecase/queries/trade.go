package queries

import (
	"context"
	"time"

	"secondhand-market/internal/infra"
	"secondhand-market/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// Read models (DTO for read side)
type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Status     string    `json:"status"`
	IsCanceled bool      `json:"is_canceled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TradeQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*ReservationView, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*ReservationView, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*ReservationView, error)
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*ReservationView, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*ReservationView, error)
}

type tradeQueriesImpl struct {
	repo ReservationViewRepo
}

func NewTradeQueries(repo ReservationViewRepo) TradeQueries {
	return &tradeQueriesImpl{repo: repo}
}

func (q *tradeQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Wrap(err, "failed to find reservation")
	}
	return view, nil
}

func (q *tradeQueriesImpl) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*ReservationView, error) {
	return q.repo.FindByBuyerID(ctx, buyerID)
}

func (q *tradeQueriesImpl) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*ReservationView, error) {
	return q.repo.FindBySellerID(ctx, sellerID)
}

func (q *tradeQueriesImpl) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*ReservationView, error) {
	return q.repo.FindByProductID(ctx, productID)
}
