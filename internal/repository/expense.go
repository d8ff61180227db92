package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/NomadCrew/splitly-backend/pkg/money"
	"github.com/NomadCrew/splitly-backend/types"
	"go.uber.org/zap"
)

const compensationTimeout = 5 * time.Second

type ExpenseRepository struct {
	backend  store.Backend
	expenses table[types.Expense]
	log      *zap.SugaredLogger
}

func NewExpenseRepository(backend store.Backend) *ExpenseRepository {
	return &ExpenseRepository{
		backend:  backend,
		expenses: newTable[types.Expense](backend, store.TableExpenses, "Expense"),
		log:      logger.GetLogger().Named("repository"),
	}
}

func (r *ExpenseRepository) ListAll(ctx context.Context) ([]types.Expense, error) {
	return r.expenses.list(ctx)
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*types.Expense, error) {
	return r.expenses.get(ctx, id)
}

func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID string) ([]types.Expense, error) {
	return r.expenses.list(ctx, store.Eq("group_id", groupID))
}

// CreateWithDebtors records an expense and splits its amount equally among the
// listed debtors. Input is validated before anything is written. Backends that
// support transactions write both tables atomically; on others a failed debtor
// insert is followed by a best-effort delete of the new expense.
func (r *ExpenseRepository) CreateWithDebtors(ctx context.Context, input types.ExpenseInput) (*types.Expense, []types.ExpenseDebtor, error) {
	if err := validateExpenseInput(input); err != nil {
		return nil, nil, err
	}
	shares, err := money.SplitEqually(input.Amount, len(input.Debtors))
	if err != nil {
		return nil, nil, err
	}

	tx, ok := r.backend.(store.Transactor)
	if !ok {
		return r.createCompensated(ctx, input, shares)
	}

	var (
		expense *types.Expense
		debtors []types.ExpenseDebtor
	)
	err = tx.WithTx(ctx, func(b store.Backend) error {
		var err error
		expense, err = newTable[types.Expense](b, store.TableExpenses, "Expense").insert(ctx, expenseRow(input))
		if err != nil {
			return err
		}
		debtors, err = newTable[types.ExpenseDebtor](b, store.TableDebtors, "ExpenseDebtor").
			insertMany(ctx, debtorRows(expense.ID, input.Debtors, shares))
		return err
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, nil, err
		}
		return nil, nil, errors.StoreUnavailable(store.TableExpenses+".create", err)
	}
	return expense, debtors, nil
}

func (r *ExpenseRepository) createCompensated(ctx context.Context, input types.ExpenseInput, shares []float64) (*types.Expense, []types.ExpenseDebtor, error) {
	expense, err := r.expenses.insert(ctx, expenseRow(input))
	if err != nil {
		return nil, nil, err
	}

	debtorTable := newTable[types.ExpenseDebtor](r.backend, store.TableDebtors, "ExpenseDebtor")
	debtors, err := debtorTable.insertMany(ctx, debtorRows(expense.ID, input.Debtors, shares))
	if err == nil {
		return expense, debtors, nil
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()
	if _, delErr := r.expenses.delete(cleanupCtx, expense.ID); delErr != nil {
		r.log.Errorw("Failed to remove expense after debtor insert failed",
			"expenseID", expense.ID,
			"groupID", expense.GroupID,
			"error", delErr)
	} else {
		r.log.Warnw("Removed expense after debtor insert failed", "expenseID", expense.ID, "error", err)
	}
	return nil, nil, err
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, update types.ExpenseUpdate) (*types.Expense, error) {
	if update.Amount != nil && money.ToCents(*update.Amount) <= 0 {
		return nil, errors.ValidationFailed("invalid expense", "amount must be positive")
	}
	if update.Name != nil && *update.Name == "" {
		return nil, errors.ValidationFailed("invalid expense", "name cannot be empty")
	}
	if update.Amount != nil {
		rounded := money.FromCents(money.ToCents(*update.Amount))
		update.Amount = &rounded
	}
	return r.expenses.update(ctx, id, update)
}

// Delete removes the expense row. Debtor rows go with it through the foreign key.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) (*types.Expense, error) {
	return r.expenses.delete(ctx, id)
}

func validateExpenseInput(input types.ExpenseInput) error {
	if input.Name == "" || input.GroupID == "" || input.PayerID == "" {
		return errors.ValidationFailed("invalid expense", "name, group_id and payer_id are required")
	}
	if money.ToCents(input.Amount) <= 0 {
		return errors.ValidationFailed("invalid expense", fmt.Sprintf("amount must be positive, got %v", input.Amount))
	}
	if len(input.Debtors) == 0 {
		return errors.ValidationFailed("invalid expense", "at least one debtor is required")
	}
	for _, d := range input.Debtors {
		if d == "" {
			return errors.ValidationFailed("invalid expense", "debtor ids cannot be empty")
		}
	}
	return nil
}

// expenseRow stores the amount rounded to cents so that it matches the sum of the shares.
func expenseRow(input types.ExpenseInput) map[string]any {
	return map[string]any{
		"name":     input.Name,
		"group_id": input.GroupID,
		"payer_id": input.PayerID,
		"amount":   money.FromCents(money.ToCents(input.Amount)),
	}
}

func debtorRows(expenseID string, personIDs []string, shares []float64) []map[string]any {
	rows := make([]map[string]any, len(personIDs))
	for i, personID := range personIDs {
		rows[i] = map[string]any{
			"expense_id": expenseID,
			"person_id":  personID,
			"amount":     shares[i],
		}
	}
	return rows
}
