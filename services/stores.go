package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/repository"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/types"
)

// Stores bundles the repositories the services read and write through.
type Stores struct {
	Groups   repository.GroupStore
	Persons  repository.PersonStore
	Members  repository.MemberStore
	Expenses repository.ExpenseStore
	Debtors  repository.DebtorStore
}

// NewStores builds every repository on the same backend.
func NewStores(backend store.Backend) Stores {
	return Stores{
		Groups:   repository.NewGroupRepository(backend),
		Persons:  repository.NewPersonRepository(backend),
		Members:  repository.NewMemberRepository(backend),
		Expenses: repository.NewExpenseRepository(backend),
		Debtors:  repository.NewDebtorRepository(backend),
	}
}

// BalanceComputer derives a group's balances from the backing store.
type BalanceComputer interface {
	Compute(ctx context.Context, groupID string) (types.Balances, error)
}
