package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/types"
)

// DebtorService writes individual debtor rows. A debtor's group is the group of
// its expense, which must exist for the cache scope to be resolved.
type DebtorService struct {
	stores Stores
	cache  *cache.Cache
}

func NewDebtorService(stores Stores, c *cache.Cache) *DebtorService {
	return &DebtorService{stores: stores, cache: c}
}

func (s *DebtorService) ListDebtors(ctx context.Context) ([]types.ExpenseDebtor, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.AllDebtors, s.stores.Debtors.ListAll)
}

func (s *DebtorService) GetDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	return s.stores.Debtors.GetByID(ctx, id)
}

func (s *DebtorService) CreateDebtor(ctx context.Context, input types.DebtorInput) (*types.ExpenseDebtor, error) {
	groupID, err := s.groupOf(ctx, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	debtor, err := s.stores.Debtors.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.patch(ctx, *debtor, groupID)
	return debtor, nil
}

func (s *DebtorService) UpdateDebtor(ctx context.Context, id string, update types.DebtorUpdate) (*types.ExpenseDebtor, error) {
	before, err := s.stores.Debtors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldGroup, err := s.groupOf(ctx, before.ExpenseID)
	if err != nil {
		return nil, err
	}
	newGroup := oldGroup
	if update.ExpenseID != nil && *update.ExpenseID != before.ExpenseID {
		if newGroup, err = s.groupOf(ctx, *update.ExpenseID); err != nil {
			return nil, err
		}
	}

	debtor, err := s.stores.Debtors.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if newGroup != oldGroup {
		cache.RemoveItem(ctx, s.cache, id, cachekeys.GroupDebtors(oldGroup))
		s.cache.Invalidate(ctx, cachekeys.GroupBalances(oldGroup))
	}
	s.patch(ctx, *debtor, newGroup)
	return debtor, nil
}

func (s *DebtorService) DeleteDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	before, err := s.stores.Debtors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	groupID, err := s.groupOf(ctx, before.ExpenseID)
	if err != nil {
		return nil, err
	}
	debtor, err := s.stores.Debtors.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.RemoveItem(ctx, s.cache, id, cachekeys.AllDebtors, cachekeys.GroupDebtors(groupID))
	s.cache.Invalidate(ctx, cachekeys.GroupBalances(groupID))
	return debtor, nil
}

func (s *DebtorService) groupOf(ctx context.Context, expenseID string) (string, error) {
	expense, err := s.stores.Expenses.GetByID(ctx, expenseID)
	if err != nil {
		return "", err
	}
	return expense.GroupID, nil
}

func (s *DebtorService) patch(ctx context.Context, debtor types.ExpenseDebtor, groupID string) {
	cache.PutItem(ctx, s.cache, debtor, cachekeys.AllDebtors, cachekeys.GroupDebtors(groupID))
	s.cache.Invalidate(ctx, cachekeys.GroupBalances(groupID))
}
