// Package balance derives per-person net balances for a group from its
// expenses and debtor rows.
package balance

import (
	"context"

	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/types"
	"go.uber.org/zap"
)

type GroupGetter interface {
	GetByID(ctx context.Context, id string) (*types.Group, error)
}

type PersonLister interface {
	ListByGroup(ctx context.Context, groupID string) ([]types.Person, error)
}

type ExpenseLister interface {
	ListByGroup(ctx context.Context, groupID string) ([]types.Expense, error)
}

type DebtorLister interface {
	ListByExpenses(ctx context.Context, expenseIDs []string) ([]types.ExpenseDebtor, error)
}

type Aggregator struct {
	groups   GroupGetter
	persons  PersonLister
	expenses ExpenseLister
	debtors  DebtorLister
	log      *zap.SugaredLogger
}

func NewAggregator(groups GroupGetter, persons PersonLister, expenses ExpenseLister, debtors DebtorLister) *Aggregator {
	return &Aggregator{
		groups:   groups,
		persons:  persons,
		expenses: expenses,
		debtors:  debtors,
		log:      logger.GetLogger().Named("balance"),
	}
}

// Compute returns the balance of every person in the group, keyed by person id.
// Expenses paid by, and debtor rows owed by, someone outside the group's
// persons are skipped. Sums are not rounded.
func (a *Aggregator) Compute(ctx context.Context, groupID string) (types.Balances, error) {
	if _, err := a.groups.GetByID(ctx, groupID); err != nil {
		return nil, err
	}

	persons, err := a.persons.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	balances := make(types.Balances, len(persons))
	if len(persons) == 0 {
		return balances, nil
	}
	for _, p := range persons {
		balances[p.ID] = types.Balance{Name: p.Name}
	}

	expenses, err := a.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenseIDs := make([]string, 0, len(expenses))
	var skipped int
	for _, e := range expenses {
		expenseIDs = append(expenseIDs, e.ID)
		b, ok := balances[e.PayerID]
		if !ok {
			skipped++
			continue
		}
		b.Paid += e.Amount
		balances[e.PayerID] = b
	}

	debtors, err := a.debtors.ListByExpenses(ctx, expenseIDs)
	if err != nil {
		return nil, err
	}
	for _, d := range debtors {
		b, ok := balances[d.PersonID]
		if !ok {
			skipped++
			continue
		}
		b.Owes += d.Amount
		balances[d.PersonID] = b
	}

	for id, b := range balances {
		b.Balance = b.Paid - b.Owes
		balances[id] = b
	}

	if skipped > 0 {
		a.log.Debugw("Skipped rows referencing unknown persons", "groupID", groupID, "count", skipped)
	}
	return balances, nil
}
