package handlers

import (
	"context"

	"github.com/NomadCrew/splitly-backend/types"
	"github.com/stretchr/testify/mock"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]types.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Group), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, id string) (*types.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Group), args.Error(1)
}

func (m *MockGroupService) CreateGroup(ctx context.Context, input types.GroupInput) (*types.Group, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Group), args.Error(1)
}

func (m *MockGroupService) UpdateGroup(ctx context.Context, id string, update types.GroupUpdate) (*types.Group, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, id string) (*types.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Group), args.Error(1)
}

func (m *MockGroupService) GroupExpenses(ctx context.Context, groupID string) ([]types.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Expense), args.Error(1)
}

func (m *MockGroupService) GroupPersons(ctx context.Context, groupID string) ([]types.Person, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Person), args.Error(1)
}

func (m *MockGroupService) GroupDebtors(ctx context.Context, groupID string) ([]types.ExpenseDebtor, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ExpenseDebtor), args.Error(1)
}

func (m *MockGroupService) GroupMembers(ctx context.Context, groupID string) ([]types.Member, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Member), args.Error(1)
}

func (m *MockGroupService) GroupBalances(ctx context.Context, groupID string) (types.Balances, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.Balances), args.Error(1)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) ListExpenses(ctx context.Context) ([]types.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpense(ctx context.Context, id string) (*types.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Expense), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, input types.ExpenseInput) (*types.Expense, []types.ExpenseDebtor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*types.Expense), args.Get(1).([]types.ExpenseDebtor), args.Error(2)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, id string, update types.ExpenseUpdate) (*types.Expense, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, id string) (*types.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Expense), args.Error(1)
}

type MockDebtorService struct {
	mock.Mock
}

func (m *MockDebtorService) ListDebtors(ctx context.Context) ([]types.ExpenseDebtor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ExpenseDebtor), args.Error(1)
}

func (m *MockDebtorService) GetDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExpenseDebtor), args.Error(1)
}

func (m *MockDebtorService) CreateDebtor(ctx context.Context, input types.DebtorInput) (*types.ExpenseDebtor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExpenseDebtor), args.Error(1)
}

func (m *MockDebtorService) UpdateDebtor(ctx context.Context, id string, update types.DebtorUpdate) (*types.ExpenseDebtor, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExpenseDebtor), args.Error(1)
}

func (m *MockDebtorService) DeleteDebtor(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExpenseDebtor), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UserGroups(ctx context.Context, userID string) ([]types.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Group), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) CheckHealth(ctx context.Context) types.HealthCheck {
	args := m.Called(ctx)
	return args.Get(0).(types.HealthCheck)
}
