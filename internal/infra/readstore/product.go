package readstore

import (
	"context"
	"errors"

	"secondhand-market/internal/infra"
	"secondhand-market/internal/infra/db"
	"secondhand-market/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productTable = "products"

// ProductReadStore is the read side of the product availability store.
type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	q, args, err := qb.Select("id", "owner_id", "title", "reserved", "completed").
		From(productTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build product select", err)
	}

	var snap shared.ProductSnapshot
	if err := r.db.QueryRow(ctx, q, args...).Scan(&snap.ID, &snap.OwnerID, &snap.Title, &snap.Reserved, &snap.Completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return &snap, nil
}
