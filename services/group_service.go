package services

import (
	"context"
	"time"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/types"
	"go.uber.org/zap"
)

// GroupService serves groups and the per-group views. The group itself is
// cached as an object, its child lists as collections and its balances as a
// short-lived object.
type GroupService struct {
	stores     Stores
	cache      *cache.Cache
	balances   BalanceComputer
	balanceTTL time.Duration
	log        *zap.SugaredLogger
}

func NewGroupService(stores Stores, c *cache.Cache, balances BalanceComputer, balanceTTL time.Duration) *GroupService {
	return &GroupService{
		stores:     stores,
		cache:      c,
		balances:   balances,
		balanceTTL: balanceTTL,
		log:        logger.GetLogger().Named("groups"),
	}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]types.Group, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.AllGroups, s.stores.Groups.ListAll)
}

func (s *GroupService) GetGroup(ctx context.Context, id string) (*types.Group, error) {
	return cache.ReadObject(ctx, s.cache, cachekeys.Group(id), func(ctx context.Context) (*types.Group, error) {
		return s.stores.Groups.GetByID(ctx, id)
	})
}

func (s *GroupService) CreateGroup(ctx context.Context, input types.GroupInput) (*types.Group, error) {
	group, err := s.stores.Groups.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cachekeys.AllGroups)
	s.log.Infow("Group created", "groupID", group.ID)
	return group, nil
}

// UpdateGroup also drops the group lists of every member, since those hold
// copies of the group.
func (s *GroupService) UpdateGroup(ctx context.Context, id string, update types.GroupUpdate) (*types.Group, error) {
	members, err := s.stores.Members.ListByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	group, err := s.stores.Groups.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	keys := append([]string{cachekeys.AllGroups, cachekeys.Group(id)}, userGroupKeys(members)...)
	s.cache.InvalidateMany(ctx, keys)
	return group, nil
}

// DeleteGroup removes the group. The store cascades the delete to the group's
// persons, members, expenses and debtors, so the global lists are dropped too.
func (s *GroupService) DeleteGroup(ctx context.Context, id string) (*types.Group, error) {
	members, err := s.stores.Members.ListByGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	group, err := s.stores.Groups.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := []string{
		cachekeys.AllGroups,
		cachekeys.AllPersons,
		cachekeys.AllMembers,
		cachekeys.AllExpenses,
		cachekeys.AllDebtors,
	}
	keys = append(keys, cachekeys.GroupScoped(id)...)
	keys = append(keys, userGroupKeys(members)...)
	s.cache.InvalidateMany(ctx, keys)
	s.log.Infow("Group deleted", "groupID", id, "members", len(members))
	return group, nil
}

func (s *GroupService) GroupExpenses(ctx context.Context, groupID string) ([]types.Expense, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.GroupExpenses(groupID), func(ctx context.Context) ([]types.Expense, error) {
		return s.stores.Expenses.ListByGroup(ctx, groupID)
	})
}

func (s *GroupService) GroupPersons(ctx context.Context, groupID string) ([]types.Person, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.GroupPersons(groupID), func(ctx context.Context) ([]types.Person, error) {
		return s.stores.Persons.ListByGroup(ctx, groupID)
	})
}

func (s *GroupService) GroupDebtors(ctx context.Context, groupID string) ([]types.ExpenseDebtor, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.GroupDebtors(groupID), func(ctx context.Context) ([]types.ExpenseDebtor, error) {
		return s.stores.Debtors.ListByGroup(ctx, groupID)
	})
}

func (s *GroupService) GroupMembers(ctx context.Context, groupID string) ([]types.Member, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.GroupMembers(groupID), func(ctx context.Context) ([]types.Member, error) {
		return s.stores.Members.ListByGroup(ctx, groupID)
	})
}

// GroupBalances returns the computed balances, cached for balanceTTL.
func (s *GroupService) GroupBalances(ctx context.Context, groupID string) (types.Balances, error) {
	return cache.ReadObject(ctx, s.cache, cachekeys.GroupBalances(groupID), func(ctx context.Context) (types.Balances, error) {
		return s.balances.Compute(ctx, groupID)
	}, cache.WithTTL(s.balanceTTL))
}

func userGroupKeys(members []types.Member) []string {
	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, cachekeys.UserGroups(m.UserID))
	}
	return keys
}
