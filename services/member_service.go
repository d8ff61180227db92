package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/types"
)

// MemberService invalidates the member lists and the user's group list on every write.
type MemberService struct {
	stores Stores
	cache  *cache.Cache
}

func NewMemberService(stores Stores, c *cache.Cache) *MemberService {
	return &MemberService{stores: stores, cache: c}
}

func (s *MemberService) ListMembers(ctx context.Context) ([]types.Member, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.AllMembers, s.stores.Members.ListAll)
}

func (s *MemberService) GetMember(ctx context.Context, id string) (*types.Member, error) {
	return s.stores.Members.GetByID(ctx, id)
}

func (s *MemberService) CreateMember(ctx context.Context, input types.MemberInput) (*types.Member, error) {
	member, err := s.stores.Members.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *member)
	return member, nil
}

func (s *MemberService) UpdateMember(ctx context.Context, id string, update types.MemberUpdate) (*types.Member, error) {
	before, err := s.stores.Members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	member, err := s.stores.Members.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *before, *member)
	return member, nil
}

func (s *MemberService) DeleteMember(ctx context.Context, id string) (*types.Member, error) {
	member, err := s.stores.Members.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, *member)
	return member, nil
}

func (s *MemberService) invalidate(ctx context.Context, members ...types.Member) {
	keys := []string{cachekeys.AllMembers}
	for _, m := range members {
		keys = append(keys, cachekeys.GroupMembers(m.GroupID), cachekeys.UserGroups(m.UserID))
	}
	s.cache.InvalidateMany(ctx, keys)
}
