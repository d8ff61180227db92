package types

import "time"

// Expense is a single cost paid by one person in one group.
type Expense struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	PayerID   string    `json:"payer_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (e Expense) GetID() string { return e.ID }

// ExpenseInput creates an expense together with its equally split debtor rows.
type ExpenseInput struct {
	Name    string   `json:"name" binding:"required"`
	GroupID string   `json:"group_id" binding:"required"`
	PayerID string   `json:"payer_id" binding:"required"`
	Amount  float64  `json:"amount"`
	Debtors []string `json:"debtors"`
}

type ExpenseUpdate struct {
	Name    *string  `json:"name,omitempty"`
	GroupID *string  `json:"group_id,omitempty"`
	PayerID *string  `json:"payer_id,omitempty"`
	Amount  *float64 `json:"amount,omitempty"`
}

// ExpenseDebtor is one person's share of one expense.
type ExpenseDebtor struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expense_id"`
	PersonID  string  `json:"person_id"`
	Amount    float64 `json:"amount"`
}

func (d ExpenseDebtor) GetID() string { return d.ID }

type DebtorInput struct {
	ExpenseID string  `json:"expense_id" binding:"required"`
	PersonID  string  `json:"person_id" binding:"required"`
	Amount    float64 `json:"amount"`
}

type DebtorUpdate struct {
	ExpenseID *string  `json:"expense_id,omitempty"`
	PersonID  *string  `json:"person_id,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
}
