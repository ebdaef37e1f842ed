package response

import (
	"time"

	"secondhand-market/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	BuyerID    uuid.UUID `json:"buyerId"`
	SellerID   uuid.UUID `json:"sellerId"`
	ProductID  uuid.UUID `json:"productId"`
	Status     string    `json:"status"`
	IsCanceled bool      `json:"isCanceled"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:         view.ID,
		BuyerID:    view.BuyerID,
		SellerID:   view.SellerID,
		ProductID:  view.ProductID,
		Status:     view.Status,
		IsCanceled: view.IsCanceled,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	responses := make([]*ReservationResponse, len(views))
	for i, view := range views {
		responses[i] = FromReservationView(view)
	}
	return responses
}
