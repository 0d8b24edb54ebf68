package writerepo

import (
	"context"

	"shareit/internal/domain/item"
	"shareit/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *item.Comment) (uuid.UUID, error) {
	query, args, err := psql.Insert("comments").
		Columns("id", "item_id", "author_id", "text", "created_at").
		Values(c.ID(), c.ItemID(), c.AuthorID(), c.Text(), c.Created()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build create comment query", err)
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create comment", err)
	}
	return id, nil
}
