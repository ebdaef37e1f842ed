package repository

import (
	"context"

	"secondhand-market/internal/infra"
	"secondhand-market/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const productTable = "products"

// ProductRepository is the write side of the product availability store.
// Only the reserved/completed flags are written from the trade flow;
// product content belongs to the product service.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) SaveFlags(ctx context.Context, dbtx db.DBTX, id uuid.UUID, reserved, completed *bool) error {
	if reserved == nil && completed == nil {
		return nil
	}

	b := qb.Update(productTable).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})
	if reserved != nil {
		b = b.Set("reserved", *reserved)
	}
	if completed != nil {
		b = b.Set("completed", *completed)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build product flag update", err)
	}

	tag, err := dbtx.Exec(ctx, q, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update product flags", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
