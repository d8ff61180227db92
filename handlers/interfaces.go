package handlers

import (
	"context"

	"github.com/NomadCrew/splitly-backend/types"
)

// GroupServiceInterface defines the group service methods needed by handlers.
type GroupServiceInterface interface {
	ListGroups(ctx context.Context) ([]types.Group, error)
	GetGroup(ctx context.Context, id string) (*types.Group, error)
	CreateGroup(ctx context.Context, input types.GroupInput) (*types.Group, error)
	UpdateGroup(ctx context.Context, id string, update types.GroupUpdate) (*types.Group, error)
	DeleteGroup(ctx context.Context, id string) (*types.Group, error)
	GroupExpenses(ctx context.Context, groupID string) ([]types.Expense, error)
	GroupPersons(ctx context.Context, groupID string) ([]types.Person, error)
	GroupDebtors(ctx context.Context, groupID string) ([]types.ExpenseDebtor, error)
	GroupMembers(ctx context.Context, groupID string) ([]types.Member, error)
	GroupBalances(ctx context.Context, groupID string) (types.Balances, error)
}

// ExpenseServiceInterface defines the expense service methods needed by handlers.
type ExpenseServiceInterface interface {
	ListExpenses(ctx context.Context) ([]types.Expense, error)
	GetExpense(ctx context.Context, id string) (*types.Expense, error)
	CreateExpense(ctx context.Context, input types.ExpenseInput) (*types.Expense, []types.ExpenseDebtor, error)
	UpdateExpense(ctx context.Context, id string, update types.ExpenseUpdate) (*types.Expense, error)
	DeleteExpense(ctx context.Context, id string) (*types.Expense, error)
}

type PersonServiceInterface interface {
	ListPersons(ctx context.Context) ([]types.Person, error)
	GetPerson(ctx context.Context, id string) (*types.Person, error)
	CreatePerson(ctx context.Context, input types.PersonInput) (*types.Person, error)
	UpdatePerson(ctx context.Context, id string, update types.PersonUpdate) (*types.Person, error)
	DeletePerson(ctx context.Context, id string) (*types.Person, error)
}

type MemberServiceInterface interface {
	ListMembers(ctx context.Context) ([]types.Member, error)
	GetMember(ctx context.Context, id string) (*types.Member, error)
	CreateMember(ctx context.Context, input types.MemberInput) (*types.Member, error)
	UpdateMember(ctx context.Context, id string, update types.MemberUpdate) (*types.Member, error)
	DeleteMember(ctx context.Context, id string) (*types.Member, error)
}

type DebtorServiceInterface interface {
	ListDebtors(ctx context.Context) ([]types.ExpenseDebtor, error)
	GetDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error)
	CreateDebtor(ctx context.Context, input types.DebtorInput) (*types.ExpenseDebtor, error)
	UpdateDebtor(ctx context.Context, id string, update types.DebtorUpdate) (*types.ExpenseDebtor, error)
	DeleteDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error)
}

type UserServiceInterface interface {
	UserGroups(ctx context.Context, userID string) ([]types.Group, error)
}

// HealthChecker reports the health of the service and its dependencies.
type HealthChecker interface {
	CheckHealth(ctx context.Context) types.HealthCheck
}
