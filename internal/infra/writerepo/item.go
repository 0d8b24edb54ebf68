package writerepo

import (
	"context"
	"errors"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) (uuid.UUID, error) {
	query, args, err := psql.Insert("items").
		Columns("id", "owner_id", "name", "description", "available").
		Values(i.ID(), i.OwnerID(), i.Name(), i.Description(), i.Available()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build create item query", err)
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create item", err)
	}
	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, id uuid.UUID, patch commands.ItemPatch) error {
	update := psql.Update("items").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		update = update.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		update = update.Set("description", *patch.Description)
	}
	if patch.Available != nil {
		update = update.Set("available", *patch.Available)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update item query", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	query, args, err := psql.Select("id", "owner_id", "name", "description", "available").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find item query", err)
	}

	var snap commands.ItemSnapshot
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.Description, &snap.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return &snap, nil
}
