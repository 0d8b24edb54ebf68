//go:build unit || e2e

// Package fake provides a mutex-guarded in-memory implementation of every
// persistence port, so full usecase flows can run without a database. Each
// port is a thin facade over one shared Store.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/domain/item"
	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type storedComment struct {
	view     queries.CommentView
	itemID   uuid.UUID
	authorID uuid.UUID
}

type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]commands.UserSnapshot
	items    map[uuid.UUID]commands.ItemSnapshot
	bookings map[uuid.UUID]commands.BookingSnapshot
	comments []storedComment
	seq      map[uuid.UUID]int // booking insertion order, the created_at tie-break
	nextSeq  int
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]commands.UserSnapshot),
		items:    make(map[uuid.UUID]commands.ItemSnapshot),
		bookings: make(map[uuid.UUID]commands.BookingSnapshot),
		seq:      make(map[uuid.UUID]int),
	}
}

func (s *Store) Users() *UserRepo            { return &UserRepo{s} }
func (s *Store) Items() *ItemRepo            { return &ItemRepo{s} }
func (s *Store) Bookings() *BookingRepo      { return &BookingRepo{s} }
func (s *Store) Comments() *CommentRepo      { return &CommentRepo{s} }
func (s *Store) BookingReads() *BookingReads { return &BookingReads{s} }
func (s *Store) UserReads() *UserReads       { return &UserReads{s} }
func (s *Store) ItemReads() *ItemReads       { return &ItemReads{s} }
func (s *Store) CommentReads() *CommentReads { return &CommentReads{s} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("no rows"), infra.KindNotFound)
}

// UserRepo implements commands.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *user.User) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email()) {
			return uuid.Nil, infra.WrapRepoErr("duplicate email", errs.New("unique violation"), infra.KindDuplicateKey)
		}
	}
	r.s.users[u.ID()] = commands.UserSnapshot{ID: u.ID(), Name: u.Name(), Email: u.Email()}
	return u.ID(), nil
}

func (r *UserRepo) Update(_ context.Context, id uuid.UUID, patch commands.UserPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.users[id]
	if !ok {
		return notFound("user not found")
	}
	if patch.Name != nil {
		snap.Name = *patch.Name
	}
	if patch.Email != nil {
		snap.Email = *patch.Email
	}
	r.s.users[id] = snap
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return notFound("user not found")
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.UserSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &snap, nil
}

func (r *UserRepo) EmailTaken(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, snap := range r.s.users {
		if id != excludeID && strings.EqualFold(snap.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// ItemRepo implements commands.ItemRepository.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) Create(_ context.Context, i *item.Item) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[i.ID()] = commands.ItemSnapshot{
		ID:          i.ID(),
		OwnerID:     i.OwnerID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
	}
	return i.ID(), nil
}

func (r *ItemRepo) Update(_ context.Context, id uuid.UUID, patch commands.ItemPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.items[id]
	if !ok {
		return notFound("item not found")
	}
	if patch.Name != nil {
		snap.Name = *patch.Name
	}
	if patch.Description != nil {
		snap.Description = *patch.Description
	}
	if patch.Available != nil {
		snap.Available = *patch.Available
	}
	r.s.items[id] = snap
	return nil
}

func (r *ItemRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.items[id]
	if !ok {
		return nil, notFound("item not found")
	}
	return &snap, nil
}

// BookingRepo implements commands.BookingRepository.
type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	itm, ok := r.s.items[b.ItemID()]
	if !ok {
		return uuid.Nil, notFound("item not found")
	}
	r.s.bookings[b.ID()] = commands.BookingSnapshot{
		ID:          b.ID(),
		ItemID:      b.ItemID(),
		ItemOwnerID: itm.OwnerID,
		BookerID:    b.BookerID(),
		Start:       b.Window().Start(),
		End:         b.Window().End(),
		Status:      b.Status(),
	}
	r.s.seq[b.ID()] = r.s.nextSeq
	r.s.nextSeq++
	return b.ID(), nil
}

func (r *BookingRepo) FindByID(_ context.Context, id uuid.UUID) (*commands.BookingSnapshot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return &snap, nil
}

func (r *BookingRepo) SetDecision(_ context.Context, id uuid.UUID, status booking.Status) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.bookings[id]
	if !ok || snap.Status != booking.StatusWaiting {
		return false, nil
	}
	snap.Status = status
	r.s.bookings[id] = snap
	return true, nil
}

// CommentRepo implements commands.CommentRepository.
type CommentRepo struct{ s *Store }

func (r *CommentRepo) Create(_ context.Context, c *item.Comment) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	author, ok := r.s.users[c.AuthorID()]
	if !ok {
		return uuid.Nil, notFound("author not found")
	}
	r.s.comments = append(r.s.comments, storedComment{
		view: queries.CommentView{
			ID:         c.ID(),
			Text:       c.Text(),
			AuthorName: author.Name,
			Created:    c.Created(),
		},
		itemID:   c.ItemID(),
		authorID: c.AuthorID(),
	})
	return c.ID(), nil
}

// BookingReads implements queries.BookingReadStore and commands.BookingHistory.
type BookingReads struct{ s *Store }

func (r *BookingReads) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return r.view(snap), nil
}

func (r *BookingReads) FindByBooker(_ context.Context, bookerID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(func(b commands.BookingSnapshot) bool { return b.BookerID == bookerID })
}

func (r *BookingReads) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(func(b commands.BookingSnapshot) bool { return b.ItemOwnerID == ownerID })
}

func (r *BookingReads) FindByItem(_ context.Context, itemID uuid.UUID) ([]*queries.BookingView, error) {
	return r.findAll(func(b commands.BookingSnapshot) bool { return b.ItemID == itemID })
}

func (r *BookingReads) HasFinishedBooking(_ context.Context, itemID, bookerID uuid.UUID, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID &&
			b.Status == booking.StatusApproved && !b.End.After(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BookingReads) findAll(match func(commands.BookingSnapshot) bool) ([]*queries.BookingView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var snaps []commands.BookingSnapshot
	for _, b := range r.s.bookings {
		if match(b) {
			snaps = append(snaps, b)
		}
	}
	// Same ordering contract as the SQL read store: start DESC, then
	// insertion order, then id.
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].Start.Equal(snaps[j].Start) {
			return snaps[i].Start.After(snaps[j].Start)
		}
		if r.s.seq[snaps[i].ID] != r.s.seq[snaps[j].ID] {
			return r.s.seq[snaps[i].ID] < r.s.seq[snaps[j].ID]
		}
		return snaps[i].ID.String() < snaps[j].ID.String()
	})

	views := make([]*queries.BookingView, len(snaps))
	for i, b := range snaps {
		views[i] = r.view(b)
	}
	return views, nil
}

func (r *BookingReads) view(b commands.BookingSnapshot) *queries.BookingView {
	itm := r.s.items[b.ItemID]
	booker := r.s.users[b.BookerID]
	return &queries.BookingView{
		ID:          b.ID,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status.String(),
		Item:        queries.ItemRef{ID: b.ItemID, Name: itm.Name},
		Booker:      queries.UserRef{ID: b.BookerID, Name: booker.Name},
		ItemOwnerID: b.ItemOwnerID,
	}
}

// UserReads implements queries.UserReadStore.
type UserReads struct{ s *Store }

func (r *UserReads) FindByID(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	return &queries.UserView{ID: snap.ID, Name: snap.Name, Email: snap.Email}, nil
}

func (r *UserReads) FindAll(_ context.Context) ([]*queries.UserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	views := make([]*queries.UserView, 0, len(r.s.users))
	for _, snap := range r.s.users {
		views = append(views, &queries.UserView{ID: snap.ID, Name: snap.Name, Email: snap.Email})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID.String() < views[j].ID.String() })
	return views, nil
}

// ItemReads implements queries.ItemReadStore.
type ItemReads struct{ s *Store }

func (r *ItemReads) FindByID(_ context.Context, id uuid.UUID) (*queries.ItemView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap, ok := r.s.items[id]
	if !ok {
		return nil, notFound("item not found")
	}
	return itemView(snap), nil
}

func (r *ItemReads) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var views []*queries.ItemView
	for _, snap := range r.s.items {
		if snap.OwnerID == ownerID {
			views = append(views, itemView(snap))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID.String() < views[j].ID.String() })
	return views, nil
}

func (r *ItemReads) Search(_ context.Context, text string) ([]*queries.ItemView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(text)
	var views []*queries.ItemView
	for _, snap := range r.s.items {
		if !snap.Available {
			continue
		}
		if strings.Contains(strings.ToLower(snap.Name), needle) ||
			strings.Contains(strings.ToLower(snap.Description), needle) {
			views = append(views, itemView(snap))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID.String() < views[j].ID.String() })
	return views, nil
}

func itemView(snap commands.ItemSnapshot) *queries.ItemView {
	return &queries.ItemView{
		ID:          snap.ID,
		Name:        snap.Name,
		Description: snap.Description,
		Available:   snap.Available,
		OwnerID:     snap.OwnerID,
	}
}

// CommentReads implements queries.CommentReadStore.
type CommentReads struct{ s *Store }

func (r *CommentReads) FindByItem(_ context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var views []*queries.CommentView
	for _, c := range r.s.comments {
		if c.itemID == itemID {
			view := c.view
			views = append(views, &view)
		}
	}
	return views, nil
}
