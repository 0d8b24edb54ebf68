package writerepo

import (
	"context"
	"errors"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	query, args, err := psql.Insert("bookings").
		Columns("id", "item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ID(), b.ItemID(), b.BookerID(), b.Window().Start(), b.Window().End(), b.Status().String()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build create booking query", err)
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.BookingSnapshot, error) {
	query, args, err := psql.Select(
		"b.id", "b.item_id", "i.owner_id", "b.booker_id",
		"b.start_date", "b.end_date", "b.status",
	).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build find booking query", err)
	}

	var snap commands.BookingSnapshot
	var status string
	row := r.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(
		&snap.ID, &snap.ItemID, &snap.ItemOwnerID, &snap.BookerID,
		&snap.Start, &snap.End, &status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.Status = booking.Status(status)
	return &snap, nil
}

// SetDecision is the single mutation a booking ever receives. The WAITING
// guard in the WHERE clause makes the transition a compare-and-set: of two
// concurrent decisions exactly one matches a row.
func (r *BookingRepository) SetDecision(ctx context.Context, id uuid.UUID, status booking.Status) (bool, error) {
	query, args, err := psql.Update("bookings").
		Set("status", status.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": booking.StatusWaiting.String()}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build decide booking query", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decide booking", err)
	}
	return tag.RowsAffected() > 0, nil
}
