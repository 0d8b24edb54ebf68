package commands

import (
	"context"
	"log/slog"
	"strings"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateUserParams struct {
	Name  string
	Email string
}

type UserCommands interface {
	Create(ctx context.Context, params CreateUserParams) (*queries.UserView, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*queries.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	userRepo UserRepository
}

func NewUserCommands(userRepo UserRepository) UserCommands {
	return &userCommandsImpl{userRepo: userRepo}
}

func (c *userCommandsImpl) Create(ctx context.Context, params CreateUserParams) (*queries.UserView, error) {
	entity, err := user.NewUser(params.Name, params.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidState)
	}

	taken, err := c.userRepo.EmailTaken(ctx, entity.Email(), uuid.Nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to check email uniqueness")
	}
	if taken {
		return nil, errs.Mark(errs.New("email already in use"), errs.ErrEmailConflict)
	}

	id, err := c.userRepo.Create(ctx, entity)
	if err != nil {
		// The unique index backs the pre-check under concurrent creates.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailConflict)
		}
		return nil, errs.Wrap(err, "failed to create user")
	}

	slog.Info("user created", "user_id", id)

	return &queries.UserView{ID: entity.ID(), Name: entity.Name(), Email: entity.Email()}, nil
}

func (c *userCommandsImpl) Update(ctx context.Context, id uuid.UUID, patch UserPatch) (*queries.UserView, error) {
	snap, err := c.userRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		if !strings.EqualFold(*patch.Email, snap.Email) {
			taken, err := c.userRepo.EmailTaken(ctx, *patch.Email, id)
			if err != nil {
				return nil, errs.Wrap(err, "failed to check email uniqueness")
			}
			if taken {
				return nil, errs.Mark(errs.New("email already used by another user"), errs.ErrEmailConflict)
			}
		}
		snap.Email = *patch.Email
	} else {
		patch.Email = nil
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		snap.Name = *patch.Name
	} else {
		patch.Name = nil
	}

	if patch.Name != nil || patch.Email != nil {
		if err := c.userRepo.Update(ctx, id, patch); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return nil, errs.Mark(err, errs.ErrEmailConflict)
			}
			return nil, errs.Wrap(err, "failed to update user")
		}
	}

	slog.Info("user updated", "user_id", id)

	return &queries.UserView{ID: snap.ID, Name: snap.Name, Email: snap.Email}, nil
}

func (c *userCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.userRepo.FindByID(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrResourceNotFound)
		}
		return errs.Wrap(err, "failed to find user")
	}

	if err := c.userRepo.Delete(ctx, id); err != nil {
		return errs.Wrap(err, "failed to delete user")
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}
