package repository

import (
	"context"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/types"
)

// DebtorRepository reads and writes expense debtor rows. Debtors carry no
// group id, so group lookups go through the group's expenses.
type DebtorRepository struct {
	debtors  table[types.ExpenseDebtor]
	expenses table[types.Expense]
}

func NewDebtorRepository(backend store.Backend) *DebtorRepository {
	return &DebtorRepository{
		debtors:  newTable[types.ExpenseDebtor](backend, store.TableDebtors, "ExpenseDebtor"),
		expenses: newTable[types.Expense](backend, store.TableExpenses, "Expense"),
	}
}

func (r *DebtorRepository) ListAll(ctx context.Context) ([]types.ExpenseDebtor, error) {
	return r.debtors.list(ctx)
}

func (r *DebtorRepository) GetByID(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	return r.debtors.get(ctx, id)
}

func (r *DebtorRepository) ListByGroup(ctx context.Context, groupID string) ([]types.ExpenseDebtor, error) {
	ids, err := r.expenses.column(ctx, colID, store.Eq("group_id", groupID))
	if err != nil {
		return nil, err
	}
	return r.ListByExpenses(ctx, ids)
}

func (r *DebtorRepository) ListByExpense(ctx context.Context, expenseID string) ([]types.ExpenseDebtor, error) {
	return r.debtors.list(ctx, store.Eq("expense_id", expenseID))
}

// ListByExpenses loads the debtors of several expenses in one statement.
func (r *DebtorRepository) ListByExpenses(ctx context.Context, expenseIDs []string) ([]types.ExpenseDebtor, error) {
	if len(expenseIDs) == 0 {
		return []types.ExpenseDebtor{}, nil
	}
	return r.debtors.list(ctx, store.In("expense_id", expenseIDs...))
}

func (r *DebtorRepository) Create(ctx context.Context, input types.DebtorInput) (*types.ExpenseDebtor, error) {
	if err := validateDebtorInput(input); err != nil {
		return nil, err
	}
	return r.debtors.insert(ctx, debtorRow(input))
}

func (r *DebtorRepository) CreateMany(ctx context.Context, inputs []types.DebtorInput) ([]types.ExpenseDebtor, error) {
	if len(inputs) == 0 {
		return []types.ExpenseDebtor{}, nil
	}
	rows := make([]map[string]any, len(inputs))
	for i, in := range inputs {
		if err := validateDebtorInput(in); err != nil {
			return nil, err
		}
		rows[i] = debtorRow(in)
	}
	return r.debtors.insertMany(ctx, rows)
}

func (r *DebtorRepository) Update(ctx context.Context, id string, update types.DebtorUpdate) (*types.ExpenseDebtor, error) {
	if update.Amount != nil && *update.Amount < 0 {
		return nil, errors.ValidationFailed("invalid debtor", "amount cannot be negative")
	}
	return r.debtors.update(ctx, id, update)
}

func (r *DebtorRepository) Delete(ctx context.Context, id string) (*types.ExpenseDebtor, error) {
	return r.debtors.delete(ctx, id)
}

func validateDebtorInput(input types.DebtorInput) error {
	if input.ExpenseID == "" || input.PersonID == "" {
		return errors.ValidationFailed("invalid debtor", "expense_id and person_id are required")
	}
	if input.Amount < 0 {
		return errors.ValidationFailed("invalid debtor", "amount cannot be negative")
	}
	return nil
}

func debtorRow(input types.DebtorInput) map[string]any {
	return map[string]any{
		"expense_id": input.ExpenseID,
		"person_id":  input.PersonID,
		"amount":     input.Amount,
	}
}
