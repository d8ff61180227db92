package repository

import (
	"context"

	"github.com/NomadCrew/splitly-backend/types"
)

// GroupStore handles group data operations
type GroupStore interface {
	ListAll(ctx context.Context) ([]types.Group, error)
	GetByID(ctx context.Context, id string) (*types.Group, error)
	ListByUser(ctx context.Context, userID string) ([]types.Group, error)
	Create(ctx context.Context, input types.GroupInput) (*types.Group, error)
	Update(ctx context.Context, id string, update types.GroupUpdate) (*types.Group, error)
	Delete(ctx context.Context, id string) (*types.Group, error)
}

// PersonStore handles person data operations
type PersonStore interface {
	ListAll(ctx context.Context) ([]types.Person, error)
	GetByID(ctx context.Context, id string) (*types.Person, error)
	ListByGroup(ctx context.Context, groupID string) ([]types.Person, error)
	ListByUser(ctx context.Context, userID string) ([]types.Person, error)
	Create(ctx context.Context, input types.PersonInput) (*types.Person, error)
	Update(ctx context.Context, id string, update types.PersonUpdate) (*types.Person, error)
	Delete(ctx context.Context, id string) (*types.Person, error)
}

// MemberStore handles group membership data operations
type MemberStore interface {
	ListAll(ctx context.Context) ([]types.Member, error)
	GetByID(ctx context.Context, id string) (*types.Member, error)
	ListByGroup(ctx context.Context, groupID string) ([]types.Member, error)
	ListByUser(ctx context.Context, userID string) ([]types.Member, error)
	Create(ctx context.Context, input types.MemberInput) (*types.Member, error)
	Update(ctx context.Context, id string, update types.MemberUpdate) (*types.Member, error)
	Delete(ctx context.Context, id string) (*types.Member, error)
}

// ExpenseStore handles expense data operations. Expenses are created together
// with their debtor rows.
type ExpenseStore interface {
	ListAll(ctx context.Context) ([]types.Expense, error)
	GetByID(ctx context.Context, id string) (*types.Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]types.Expense, error)
	CreateWithDebtors(ctx context.Context, input types.ExpenseInput) (*types.Expense, []types.ExpenseDebtor, error)
	Update(ctx context.Context, id string, update types.ExpenseUpdate) (*types.Expense, error)
	Delete(ctx context.Context, id string) (*types.Expense, error)
}

// DebtorStore handles expense debtor data operations
type DebtorStore interface {
	ListAll(ctx context.Context) ([]types.ExpenseDebtor, error)
	GetByID(ctx context.Context, id string) (*types.ExpenseDebtor, error)
	ListByGroup(ctx context.Context, groupID string) ([]types.ExpenseDebtor, error)
	ListByExpense(ctx context.Context, expenseID string) ([]types.ExpenseDebtor, error)
	ListByExpenses(ctx context.Context, expenseIDs []string) ([]types.ExpenseDebtor, error)
	Create(ctx context.Context, input types.DebtorInput) (*types.ExpenseDebtor, error)
	CreateMany(ctx context.Context, inputs []types.DebtorInput) ([]types.ExpenseDebtor, error)
	Update(ctx context.Context, id string, update types.DebtorUpdate) (*types.ExpenseDebtor, error)
	Delete(ctx context.Context, id string) (*types.ExpenseDebtor, error)
}

var (
	_ GroupStore   = (*GroupRepository)(nil)
	_ PersonStore  = (*PersonRepository)(nil)
	_ MemberStore  = (*MemberRepository)(nil)
	_ ExpenseStore = (*ExpenseRepository)(nil)
	_ DebtorStore  = (*DebtorRepository)(nil)
)
