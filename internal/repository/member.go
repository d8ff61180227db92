package repository

import (
	"context"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/types"
)

type MemberRepository struct {
	members table[types.Member]
}

func NewMemberRepository(backend store.Backend) *MemberRepository {
	return &MemberRepository{members: newTable[types.Member](backend, store.TableMembers, "Member")}
}

func (r *MemberRepository) ListAll(ctx context.Context) ([]types.Member, error) {
	return r.members.list(ctx)
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*types.Member, error) {
	return r.members.get(ctx, id)
}

func (r *MemberRepository) ListByGroup(ctx context.Context, groupID string) ([]types.Member, error) {
	return r.members.list(ctx, store.Eq("group_id", groupID))
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]types.Member, error) {
	return r.members.list(ctx, store.Eq("user_id", userID))
}

func (r *MemberRepository) Create(ctx context.Context, input types.MemberInput) (*types.Member, error) {
	if input.GroupID == "" || input.UserID == "" {
		return nil, errors.ValidationFailed("invalid member", "group_id and user_id are required")
	}
	return r.members.insert(ctx, map[string]any{
		"group_id": input.GroupID,
		"user_id":  input.UserID,
	})
}

func (r *MemberRepository) Update(ctx context.Context, id string, update types.MemberUpdate) (*types.Member, error) {
	return r.members.update(ctx, id, update)
}

func (r *MemberRepository) Delete(ctx context.Context, id string) (*types.Member, error) {
	return r.members.delete(ctx, id)
}
