package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/types"
)

type UserService struct {
	stores Stores
	cache  *cache.Cache
}

func NewUserService(stores Stores, c *cache.Cache) *UserService {
	return &UserService{stores: stores, cache: c}
}

// UserGroups lists the groups the user is a member of.
func (s *UserService) UserGroups(ctx context.Context, userID string) ([]types.Group, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.UserGroups(userID), func(ctx context.Context) ([]types.Group, error) {
		return s.stores.Groups.ListByUser(ctx, userID)
	})
}
