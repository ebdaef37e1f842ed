package trade

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOwnProduct   = errors.New("cannot reserve own product")
	ErrNotDeletable = errors.New("reservation is not in a deletable status")
	ErrNotBuyer     = errors.New("only the buyer may delete a reservation")
)

// Reservation is one negotiation between a buyer and a seller over one
// product. It references the participants and the product by id only.
type Reservation struct {
	id        uuid.UUID
	buyerID   uuid.UUID
	sellerID  uuid.UUID
	productID uuid.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(buyerID, sellerID, productID uuid.UUID) (*Reservation, error) {
	if buyerID == sellerID {
		return nil, ErrOwnProduct
	}
	return &Reservation{
		id:        uuid.New(),
		buyerID:   buyerID,
		sellerID:  sellerID,
		productID: productID,
		status:    StatusRequested,
	}, nil
}

func Reconstruct(
	id, buyerID, sellerID, productID uuid.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		buyerID:   buyerID,
		sellerID:  sellerID,
		productID: productID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) BuyerID() uuid.UUID   { return r.buyerID }
func (r *Reservation) SellerID() uuid.UUID  { return r.sellerID }
func (r *Reservation) ProductID() uuid.UUID { return r.productID }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// IsActive reports whether the negotiation is still open (REQUESTED or
// ACCEPTED). At most one active reservation may exist per buyer/product.
func (r *Reservation) IsActive() bool {
	return !r.status.IsTerminal()
}

// IsCanceled is derived from status; there is no separate stored flag.
func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCancelled
}

// TransitionTo moves the reservation to target on behalf of actorID and
// returns the product/notification effects of the transition. The
// reservation is left untouched on any error.
func (r *Reservation) TransitionTo(target Status, actorID uuid.UUID) (Effects, error) {
	role := RoleOf(actorID, r.buyerID, r.sellerID)
	effects, err := resolveTransition(r.status, target, role)
	if err != nil {
		return Effects{}, err
	}
	r.status = target
	return effects, nil
}

// EnsureDeletableBy guards hard deletion: buyer only, and only while the
// reservation never reached ACCEPTED or COMPLETED.
func (r *Reservation) EnsureDeletableBy(actorID uuid.UUID) error {
	if actorID != r.buyerID {
		return ErrNotBuyer
	}
	switch r.status {
	case StatusRequested, StatusDeclined, StatusCancelled:
		return nil
	default:
		return ErrNotDeletable
	}
}
