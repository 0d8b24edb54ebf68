package readstore

import (
	"context"
	"errors"

	"shareit/internal/infra"
	"shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemReadStore struct {
	pool *pgxpool.Pool
}

func NewItemReadStore(pool *pgxpool.Pool) *ItemReadStore {
	return &ItemReadStore{pool: pool}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item view query", err)
	}

	view, err := scanItemView(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item view", err)
	}
	return view, nil
}

func (r *ItemReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id").
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build owner items query", err)
	}
	return r.queryViews(ctx, query, args, "failed to find owner items")
}

func (r *ItemReadStore) Search(ctx context.Context, text string) ([]*queries.ItemView, error) {
	pattern := "%" + text + "%"
	query, args, err := psql.Select("id", "name", "description", "available", "owner_id").
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item search query", err)
	}
	return r.queryViews(ctx, query, args, "failed to search items")
}

func (r *ItemReadStore) queryViews(ctx context.Context, query string, args []any, msg string) ([]*queries.ItemView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	views := make([]*queries.ItemView, 0)
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return views, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var v queries.ItemView
	if err := row.Scan(&v.ID, &v.Name, &v.Description, &v.Available, &v.OwnerID); err != nil {
		return nil, err
	}
	return &v, nil
}
