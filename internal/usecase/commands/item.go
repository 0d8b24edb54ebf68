package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/item"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateItemParams struct {
	Name        string
	Description string
	Available   *bool
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, patch ItemPatch) (*queries.ItemView, error)
	AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error)
}

type itemCommandsImpl struct {
	itemRepo    ItemRepository
	userRepo    UserRepository
	commentRepo CommentRepository
	history     BookingHistory
	clock       clock.Clock
}

func NewItemCommands(
	itemRepo ItemRepository,
	userRepo UserRepository,
	commentRepo CommentRepository,
	history BookingHistory,
	clock clock.Clock,
) ItemCommands {
	return &itemCommandsImpl{
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		history:     history,
		clock:       clock,
	}
}

func (c *itemCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, params CreateItemParams) (*queries.ItemView, error) {
	owner, err := c.resolveUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entity, err := item.NewItem(owner.ID, params.Name, params.Description, params.Available)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidState)
	}

	id, err := c.itemRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create item")
	}

	slog.Info("item created", "item_id", id, "owner_id", ownerID)

	return snapshotToItemView(&ItemSnapshot{
		ID:          entity.ID(),
		OwnerID:     entity.OwnerID(),
		Name:        entity.Name(),
		Description: entity.Description(),
		Available:   entity.Available(),
	}), nil
}

func (c *itemCommandsImpl) Update(ctx context.Context, ownerID, itemID uuid.UUID, patch ItemPatch) (*queries.ItemView, error) {
	if _, err := c.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}

	snap, err := c.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	// Non-owners learn nothing about the item's existence.
	if snap.OwnerID != ownerID {
		return nil, errs.Mark(errs.Newf("item not found: id=%s", itemID), errs.ErrResourceNotFound)
	}

	applyItemPatch(snap, patch)

	if err := c.itemRepo.Update(ctx, itemID, patch); err != nil {
		return nil, errs.Wrap(err, "failed to update item")
	}

	slog.Info("item updated", "item_id", itemID, "owner_id", ownerID)

	return snapshotToItemView(snap), nil
}

func (c *itemCommandsImpl) AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error) {
	author, err := c.resolveUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := c.itemRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	now := c.clock.Now()
	eligible, err := c.history.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, errs.Wrap(err, "failed to check comment eligibility")
	}
	if !eligible {
		return nil, errs.Mark(errs.New("commenting requires a finished approved booking"), errs.ErrInvalidState)
	}

	entity, err := item.NewComment(itemID, authorID, text, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidState)
	}

	id, err := c.commentRepo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create comment")
	}

	slog.Info("comment added", "comment_id", id, "item_id", itemID, "author_id", authorID)

	return &queries.CommentView{
		ID:         entity.ID(),
		Text:       entity.Text(),
		AuthorName: author.Name,
		Created:    entity.Created(),
	}, nil
}

func (c *itemCommandsImpl) resolveUser(ctx context.Context, id uuid.UUID) (*UserSnapshot, error) {
	snap, err := c.userRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to resolve user")
	}
	return snap, nil
}

func applyItemPatch(snap *ItemSnapshot, patch ItemPatch) {
	if patch.Name != nil {
		snap.Name = *patch.Name
	}
	if patch.Description != nil {
		snap.Description = *patch.Description
	}
	if patch.Available != nil {
		snap.Available = *patch.Available
	}
}

func snapshotToItemView(snap *ItemSnapshot) *queries.ItemView {
	return &queries.ItemView{
		ID:          snap.ID,
		Name:        snap.Name,
		Description: snap.Description,
		Available:   snap.Available,
		OwnerID:     snap.OwnerID,
	}
}
