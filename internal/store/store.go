// Package store defines the table-level contract the repositories use to reach the
// backing store. Results are returned as the JSON array of affected rows.
package store

import (
	"context"
	"errors"
	"strings"
)

// Table names of the backing store.
const (
	TableGroups   = "groups"
	TablePersons  = "persons"
	TableMembers  = "group_users"
	TableExpenses = "expenses"
	TableDebtors  = "expenses_debtors"
)

// AllColumns selects every column of a table.
const AllColumns = "*"

type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
)

// Filter restricts a statement to rows whose column matches one of Values.
type Filter struct {
	Column string
	Op     Op
	Values []string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Op: OpEq, Values: []string{value}}
}

func In(column string, values ...string) Filter {
	return Filter{Column: column, Op: OpIn, Values: values}
}

// ErrUnfiltered is returned for updates and deletes without a filter.
var ErrUnfiltered = errors.New("store: refusing to mutate an unfiltered table")

// Backend is the backing store client.
type Backend interface {
	Select(ctx context.Context, table, columns string, filters ...Filter) ([]byte, error)
	// Insert accepts a single row or a slice of rows.
	Insert(ctx context.Context, table string, rows any) ([]byte, error)
	Update(ctx context.Context, table string, patch any, filters ...Filter) ([]byte, error)
	Delete(ctx context.Context, table string, filters ...Filter) ([]byte, error)
}

// Transactor is implemented by backends that can run several statements atomically.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx Backend) error) error
}

// Pinger is implemented by backends that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Columns splits a column list such as "id, name" into trimmed names.
// It returns nil for AllColumns.
func Columns(columns string) []string {
	if strings.TrimSpace(columns) == AllColumns || columns == "" {
		return nil
	}
	parts := strings.Split(columns, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RequireFilter guards mutating statements.
func RequireFilter(filters []Filter) error {
	if len(filters) == 0 {
		return ErrUnfiltered
	}
	return nil
}
