package readstore

import (
	"context"
	"errors"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// bookingColumns feeds every booking view query so the scan order stays in
// one place.
var bookingColumns = []string{
	"b.id", "b.start_date", "b.end_date", "b.status",
	"i.id", "i.name", "i.owner_id",
	"u.id", "u.name",
}

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := r.baseSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := scanBookingView(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByBooker(ctx context.Context, bookerID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(ctx, squirrel.Eq{"b.booker_id": bookerID}, "failed to find bookings by booker")
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(ctx, squirrel.Eq{"i.owner_id": ownerID}, "failed to find bookings by owner")
}

func (r *BookingReadStore) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(ctx, squirrel.Eq{"b.item_id": itemID}, "failed to find bookings by item")
}

// HasFinishedBooking backs comment eligibility: a finished APPROVED booking
// of the item by the user.
func (r *BookingReadStore) HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, at time.Time) (bool, error) {
	sub := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"item_id":   itemID,
			"booker_id": bookerID,
			"status":    booking.StatusApproved.String(),
		}).
		Where(squirrel.LtOrEq{"end_date": at})

	query, args, err := sub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build finished booking query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check finished booking", err)
	}
	return exists, nil
}

func (r *BookingReadStore) baseSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

func (r *BookingReadStore) findAll(ctx context.Context, pred any, msg string) ([]*queries.BookingView, error) {
	// start DESC with creation-order tie-break keeps listings stable.
	query, args, err := r.baseSelect().
		Where(pred).
		OrderBy("b.start_date DESC", "b.created_at ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
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

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	if err := row.Scan(
		&v.ID, &v.Start, &v.End, &v.Status,
		&v.Item.ID, &v.Item.Name, &v.ItemOwnerID,
		&v.Booker.ID, &v.Booker.Name,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
