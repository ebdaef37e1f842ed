package readstore

import (
	"context"
	"errors"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/internal/infra"
	"secondhand-market/internal/infra/db"
	"secondhand-market/internal/usecase/queries"
	"secondhand-market/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const reservationTable = "reservations"

var reservationColumns = []string{"id", "buyer_id", "seller_id", "product_id", "status", "created_at", "updated_at"}

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation select", err)
	}

	view, err := scanReservationView(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.findBy(ctx, sq.Eq{"buyer_id": buyerID})
}

func (r *ReservationReadStore) FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.findBy(ctx, sq.Eq{"seller_id": sellerID})
}

func (r *ReservationReadStore) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.findBy(ctx, sq.Eq{"product_id": productID})
}

func (r *ReservationReadStore) findBy(ctx context.Context, pred sq.Eq) ([]*queries.ReservationView, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTable).
		Where(pred).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation list select", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return views, nil
}

// FindSnapshotByID serves the command side: the raw row without view
// decoration.
func (r *ReservationReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	view, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.ReservationSnapshot{
		ID:        view.ID,
		BuyerID:   view.BuyerID,
		SellerID:  view.SellerID,
		ProductID: view.ProductID,
		Status:    trade.Status(view.Status),
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}, nil
}

// ActiveExists reports whether a non-terminal reservation already ties this
// buyer to this product.
func (r *ReservationReadStore) ActiveExists(ctx context.Context, buyerID, productID uuid.UUID) (bool, error) {
	inner := qb.Select("1").
		From(reservationTable).
		Where(sq.Eq{"buyer_id": buyerID, "product_id": productID}).
		Where(sq.Eq{"status": []string{trade.StatusRequested.String(), trade.StatusAccepted.String()}})

	q, args, err := inner.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build active reservation check", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, q, args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check active reservation", err)
	}
	return exists, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var view queries.ReservationView
	if err := row.Scan(
		&view.ID,
		&view.BuyerID,
		&view.SellerID,
		&view.ProductID,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return nil, err
	}
	view.IsCanceled = view.Status == trade.StatusCancelled.String()
	return &view, nil
}
