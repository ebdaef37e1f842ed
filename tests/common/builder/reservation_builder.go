//go:build unit || e2e

package builder

import (
	"time"

	"secondhand-market/internal/domain/trade"
	reqdto "secondhand-market/internal/handler/dto/request"
	"secondhand-market/internal/usecase/queries"
	"secondhand-market/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID             uuid.UUID
	BuyerID        uuid.UUID
	BuyerNickname  string
	SellerID       uuid.UUID
	SellerNickname string
	ProductID      uuid.UUID
	ProductTitle   string
	Status         trade.Status
	Reserved       bool
	Completed      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:             uuid.New(),
		BuyerID:        uuid.New(),
		BuyerNickname:  "buyer-taro",
		SellerID:       uuid.New(),
		SellerNickname: "seller-hanako",
		ProductID:      uuid.New(),
		ProductTitle:   "Used Camera",
		Status:         trade.StatusRequested,
		Reserved:       true,
		Completed:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithStatus(status trade.Status) *ReservationBuilder {
	b.Status = status
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *trade.Reservation {
	return trade.Reconstruct(b.ID, b.BuyerID, b.SellerID, b.ProductID, b.Status, b.CreatedAt, b.UpdatedAt)
}

func (b *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:        b.ID,
		BuyerID:   b.BuyerID,
		SellerID:  b.SellerID,
		ProductID: b.ProductID,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildBuyerSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{ID: b.BuyerID, Nickname: b.BuyerNickname}
}

func (b *ReservationBuilder) BuildSellerSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{ID: b.SellerID, Nickname: b.SellerNickname}
}

func (b *ReservationBuilder) BuildProductSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:        b.ProductID,
		OwnerID:   b.SellerID,
		Title:     b.ProductTitle,
		Reserved:  b.Reserved,
		Completed: b.Completed,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		BuyerID:   b.BuyerID,
		ProductID: b.ProductID,
	}
}

func (b *ReservationBuilder) BuildUpdateStatusRequestDTO(target trade.Status, actorID uuid.UUID) reqdto.UpdateReservationStatusRequest {
	return reqdto.UpdateReservationStatusRequest{
		Status:  string(target),
		ActorID: actorID,
	}
}

func (b *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	return &queries.ReservationView{
		ID:         b.ID,
		BuyerID:    b.BuyerID,
		SellerID:   b.SellerID,
		ProductID:  b.ProductID,
		Status:     string(b.Status),
		IsCanceled: b.Status == trade.StatusCancelled,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
