package request

import (
	"strings"

	"secondhand-market/internal/domain/trade"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	BuyerID   uuid.UUID `json:"buyerId" binding:"required"`
	ProductID uuid.UUID `json:"productId" binding:"required"`
}

type UpdateReservationStatusRequest struct {
	Status  string    `json:"status" binding:"required"`
	ActorID uuid.UUID `json:"actorId" binding:"required"`
}

// TargetStatus normalizes the wire value; validity is the state machine's
// call, so an unknown value still reaches the usecase and fails there as an
// invalid transition target rather than a bind error.
func (r UpdateReservationStatusRequest) TargetStatus() trade.Status {
	return trade.Status(strings.ToUpper(strings.TrimSpace(r.Status)))
}

type DeleteReservationRequest struct {
	ActorID uuid.UUID `json:"actorId" binding:"required"`
}
