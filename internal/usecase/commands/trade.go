package commands

import (
	"context"
	"errors"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/internal/infra"
	"secondhand-market/internal/pkg/clock"
	"secondhand-market/internal/pkg/errs"
	"secondhand-market/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrProductNotFound      = errs.New("product not found")
	ErrReservationNotFound  = errs.New("reservation not found")
	ErrProductNotReservable = errs.New("product is not reservable")
	ErrOwnProduct           = errs.New("cannot reserve own product")
	ErrReservationExists    = errs.New("reservation already exists")
	ErrForbidden            = errs.New("actor may not perform this action")
	ErrInvalidState         = errs.New("action not allowed in current status")
	ErrInvalidTransition    = errs.New("invalid transition target")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// TradeCommands is the trade lifecycle manager: it owns reservation
// creation, authorization-checked status transitions, and the synchronized
// write-through to product flags and the notification outbox.
type TradeCommands interface {
	CreateReservation(ctx context.Context, buyerID, productID uuid.UUID) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, target trade.Status, actorID uuid.UUID) error
	DeleteReservation(ctx context.Context, reservationID, actorID uuid.UUID) error
}

type tradeUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTradeCommands(uow shared.UnitOfWork, clk clock.Clock) TradeCommands {
	return &tradeUseCaseImpl{uow: uow, clock: clk}
}

// CreateReservation runs the precondition chain in a fixed order (first
// failure wins), then creates the REQUESTED reservation, marks the product
// reserved and enqueues the seller notification, all in one transaction.
// This is the only path that flips a product from unreserved to reserved.
func (uc *tradeUseCaseImpl) CreateReservation(ctx context.Context, buyerID, productID uuid.UUID) (uuid.UUID, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		buyer, derr := tx.Reads().UserByID(ctx, buyerID)
		if derr != nil {
			return mapReadErr(derr, ErrUserNotFound)
		}

		product, derr := tx.Reads().ProductByID(ctx, productID)
		if derr != nil {
			return mapReadErr(derr, ErrProductNotFound)
		}

		if product.Reserved && buyerID != product.OwnerID {
			return ErrProductNotReservable
		}
		if buyerID == product.OwnerID {
			return ErrOwnProduct
		}

		exists, derr := tx.Reads().HasActiveReservation(ctx, buyerID, productID)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if exists {
			return ErrReservationExists
		}

		res, derr := trade.NewReservation(buyerID, product.OwnerID, productID)
		if derr != nil {
			return errs.Mark(derr, ErrOwnProduct)
		}

		id, derr := tx.Reservations().Create(ctx, tx.DB(), res)
		if derr != nil {
			// The unique index is the real duplicate guard; the existence
			// check above only makes the common path friendlier.
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, ErrReservationExists)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		reserved := true
		if derr := tx.Products().SaveFlags(ctx, tx.DB(), productID, &reserved, nil); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		message := trade.RequestedMessage(buyer.Nickname, product.Title)
		if derr := tx.Notifications().CreateJob(ctx, tx.DB(), product.OwnerID, id, trade.SubjectTypeReservation, message, uc.clock.Now()); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// UpdateStatus applies one transition from the lifecycle table, persists
// the reservation and product flag effects, and notifies the party who did
// not initiate the transition.
func (uc *tradeUseCaseImpl) UpdateStatus(ctx context.Context, reservationID uuid.UUID, target trade.Status, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByID(ctx, reservationID)
		if derr != nil {
			return mapReadErr(derr, ErrReservationNotFound)
		}

		actor, derr := tx.Reads().UserByID(ctx, actorID)
		if derr != nil {
			return mapReadErr(derr, ErrUserNotFound)
		}

		product, derr := tx.Reads().ProductByID(ctx, snap.ProductID)
		if derr != nil {
			return mapReadErr(derr, ErrProductNotFound)
		}

		res := trade.Reconstruct(snap.ID, snap.BuyerID, snap.SellerID, snap.ProductID, snap.Status, snap.CreatedAt, snap.UpdatedAt)
		effects, derr := res.TransitionTo(target, actorID)
		if derr != nil {
			return mapTransitionErr(derr)
		}

		if derr := tx.Reservations().UpdateStatus(ctx, tx.DB(), res.ID(), res.Status()); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if derr := tx.Products().SaveFlags(ctx, tx.DB(), snap.ProductID, effects.SetReserved, effects.SetCompleted); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		recipientID := snap.BuyerID
		if effects.Notify == trade.RoleSeller {
			recipientID = snap.SellerID
		}
		message := trade.TransitionMessage(target, actor.Nickname, product.Title)
		if derr := tx.Notifications().CreateJob(ctx, tx.DB(), recipientID, snap.ID, trade.SubjectTypeReservation, message, uc.clock.Now()); derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// DeleteReservation hard-deletes a reservation on the buyer's request.
// Product flags are left untouched: for DECLINED and CANCELLED the table
// already cleared them, and a REQUESTED delete never unwinds flags.
func (uc *tradeUseCaseImpl) DeleteReservation(ctx context.Context, reservationID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByID(ctx, reservationID)
		if derr != nil {
			return mapReadErr(derr, ErrReservationNotFound)
		}

		res := trade.Reconstruct(snap.ID, snap.BuyerID, snap.SellerID, snap.ProductID, snap.Status, snap.CreatedAt, snap.UpdatedAt)
		if derr := res.EnsureDeletableBy(actorID); derr != nil {
			if errors.Is(derr, trade.ErrNotBuyer) {
				return errs.Mark(derr, ErrForbidden)
			}
			return errs.Mark(derr, ErrInvalidState)
		}

		if derr := tx.Reservations().Delete(ctx, tx.DB(), reservationID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrReservationNotFound)
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func mapReadErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, trade.ErrInvalidTarget):
		return errs.Mark(err, ErrInvalidTransition)
	case errors.Is(err, trade.ErrInvalidFromStatus):
		return errs.Mark(err, ErrInvalidState)
	case errors.Is(err, trade.ErrNotParticipant), errors.Is(err, trade.ErrActionNotAllowed):
		return errs.Mark(err, ErrForbidden)
	default:
		return err
	}
}
