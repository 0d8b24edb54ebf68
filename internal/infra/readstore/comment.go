package readstore

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentReadStore struct {
	pool *pgxpool.Pool
}

func NewCommentReadStore(pool *pgxpool.Pool) *CommentReadStore {
	return &CommentReadStore{pool: pool}
}

func (r *CommentReadStore) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	query, args, err := psql.Select("c.id", "c.text", "u.name", "c.created_at").
		From("comments c").
		Join("users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item comments query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find item comments", err)
	}
	defer rows.Close()

	views := make([]*queries.CommentView, 0)
	for rows.Next() {
		var v queries.CommentView
		if err := rows.Scan(&v.ID, &v.Text, &v.AuthorName, &v.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to find item comments", err)
	}
	return views, nil
}
