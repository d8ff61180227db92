package repository

import (
	"context"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/types"
)

type GroupRepository struct {
	groups  table[types.Group]
	members table[types.Member]
}

func NewGroupRepository(backend store.Backend) *GroupRepository {
	return &GroupRepository{
		groups:  newTable[types.Group](backend, store.TableGroups, "Group"),
		members: newTable[types.Member](backend, store.TableMembers, "Member"),
	}
}

func (r *GroupRepository) ListAll(ctx context.Context) ([]types.Group, error) {
	return r.groups.list(ctx)
}

func (r *GroupRepository) GetByID(ctx context.Context, id string) (*types.Group, error) {
	return r.groups.get(ctx, id)
}

// ListByUser returns the groups the user is a member of.
func (r *GroupRepository) ListByUser(ctx context.Context, userID string) ([]types.Group, error) {
	ids, err := r.members.column(ctx, "group_id", store.Eq("user_id", userID))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.Group{}, nil
	}
	return r.groups.list(ctx, store.In(colID, ids...))
}

func (r *GroupRepository) Create(ctx context.Context, input types.GroupInput) (*types.Group, error) {
	if input.Name == "" {
		return nil, errors.ValidationFailed("invalid group", "name is required")
	}
	return r.groups.insert(ctx, map[string]any{"name": input.Name})
}

func (r *GroupRepository) Update(ctx context.Context, id string, update types.GroupUpdate) (*types.Group, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, errors.ValidationFailed("invalid group", "name cannot be empty")
	}
	return r.groups.update(ctx, id, update)
}

func (r *GroupRepository) Delete(ctx context.Context, id string) (*types.Group, error) {
	return r.groups.delete(ctx, id)
}
