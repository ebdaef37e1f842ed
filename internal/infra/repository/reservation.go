package repository

import (
	"context"
	"errors"

	"secondhand-market/internal/domain/trade"
	"secondhand-market/internal/infra"
	"secondhand-market/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const reservationTable = "reservations"

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// Create inserts a REQUESTED reservation. The partial unique index
// uq_reservations_active_product (product_id WHERE status IN
// ('REQUESTED','ACCEPTED')) closes the concurrent-create race; a violation
// surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, dbtx db.DBTX, res *trade.Reservation) (uuid.UUID, error) {
	q, args, err := qb.Insert(reservationTable).
		Columns("id", "buyer_id", "seller_id", "product_id", "status", "created_at", "updated_at").
		Values(res.ID(), res.BuyerID(), res.SellerID(), res.ProductID(), res.Status().String(), sq.Expr("now()"), sq.Expr("now()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build reservation insert", err)
	}

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active reservation already exists for product", err, infra.KindConflict)
		}
		if isForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("reservation references missing row", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status trade.Status) error {
	q, args, err := qb.Update(reservationTable).
		Set("status", status.String()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation status update", err)
	}

	tag, err := dbtx.Exec(ctx, q, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	q, args, err := qb.Delete(reservationTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build reservation delete", err)
	}

	tag, err := dbtx.Exec(ctx, q, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
