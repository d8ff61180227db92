package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/types"
	"go.uber.org/zap"
)

// ExpenseService keeps the expense and debtor collections patched in place on
// every write and drops the affected group's balances.
type ExpenseService struct {
	stores Stores
	cache  *cache.Cache
	log    *zap.SugaredLogger
}

func NewExpenseService(stores Stores, c *cache.Cache) *ExpenseService {
	return &ExpenseService{
		stores: stores,
		cache:  c,
		log:    logger.GetLogger().Named("expenses"),
	}
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]types.Expense, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.AllExpenses, s.stores.Expenses.ListAll)
}

func (s *ExpenseService) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	return s.stores.Expenses.GetByID(ctx, id)
}

// CreateExpense records the expense with one equal share per debtor.
func (s *ExpenseService) CreateExpense(ctx context.Context, input types.ExpenseInput) (*types.Expense, []types.ExpenseDebtor, error) {
	expense, debtors, err := s.stores.Expenses.CreateWithDebtors(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	cache.PutItem(ctx, s.cache, *expense, cachekeys.AllExpenses, cachekeys.GroupExpenses(expense.GroupID))
	for _, d := range debtors {
		cache.PutItem(ctx, s.cache, d, cachekeys.AllDebtors, cachekeys.GroupDebtors(expense.GroupID))
	}
	s.cache.Invalidate(ctx, cachekeys.GroupBalances(expense.GroupID))

	s.log.Infow("Expense created",
		"expenseID", expense.ID,
		"groupID", expense.GroupID,
		"debtors", len(debtors))
	return expense, debtors, nil
}

// UpdateExpense patches the expense. Moving it to another group moves its
// debtor rows along, so both groups' debtor lists and balances are dropped.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, update types.ExpenseUpdate) (*types.Expense, error) {
	before, err := s.stores.Expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expense, err := s.stores.Expenses.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	cache.PutItem(ctx, s.cache, *expense, cachekeys.AllExpenses, cachekeys.GroupExpenses(expense.GroupID))
	keys := []string{cachekeys.GroupBalances(expense.GroupID)}
	if before.GroupID != expense.GroupID {
		cache.RemoveItem(ctx, s.cache, id, cachekeys.GroupExpenses(before.GroupID))
		keys = append(keys,
			cachekeys.GroupBalances(before.GroupID),
			cachekeys.GroupDebtors(before.GroupID),
			cachekeys.GroupDebtors(expense.GroupID),
		)
	}
	s.cache.InvalidateMany(ctx, keys)
	return expense, nil
}

// DeleteExpense removes the expense; its debtor rows are deleted by the store.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) (*types.Expense, error) {
	expense, err := s.stores.Expenses.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	cache.RemoveItem(ctx, s.cache, id, cachekeys.AllExpenses, cachekeys.GroupExpenses(expense.GroupID))
	s.cache.Invalidate(ctx,
		cachekeys.AllDebtors,
		cachekeys.GroupDebtors(expense.GroupID),
		cachekeys.GroupBalances(expense.GroupID))
	s.log.Infow("Expense deleted", "expenseID", id, "groupID", expense.GroupID)
	return expense, nil
}
