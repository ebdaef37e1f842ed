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

const userTable = "users"

// UserReadStore is the participant directory: read-only id → user lookups.
type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	q, args, err := qb.Select("id", "nickname").
		From(userTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	var snap shared.UserSnapshot
	if err := r.db.QueryRow(ctx, q, args...).Scan(&snap.ID, &snap.Nickname); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}
