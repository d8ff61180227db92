// Package postgres implements store.Backend directly on PostgreSQL with pgx.
// Every statement returns its affected rows as one JSON array built by json_agg,
// so callers decode the same shape as from the PostgREST backend.
package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DB is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Backend struct {
	db  DB
	log *zap.SugaredLogger
}

var (
	_ store.Backend    = (*Backend)(nil)
	_ store.Transactor = (*Backend)(nil)
)

func New(db DB) *Backend {
	return &Backend{db: db, log: logger.GetLogger().Named("postgres")}
}

const aggregate = `WITH r AS (%s) SELECT coalesce(json_agg(r), '[]'::json) FROM r`

func (b *Backend) Select(ctx context.Context, table, columns string, filters ...store.Filter) ([]byte, error) {
	where, args := whereClause(table, filters, 1)
	stmt := fmt.Sprintf("SELECT %s FROM %s%s", projection(columns), ident(table), where)
	return b.query(ctx, "select", table, stmt, args...)
}

func (b *Backend) Insert(ctx context.Context, table string, rows any) ([]byte, error) {
	records, err := decodeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("postgres insert %s: %w", table, err)
	}
	if len(records) == 0 {
		return []byte("[]"), nil
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("postgres insert %s: %w", table, err)
	}

	cols := columnList(unionKeys(records))
	stmt := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM json_populate_recordset(NULL::%s, $1::json) RETURNING *",
		ident(table), cols, cols, ident(table))
	return b.query(ctx, "insert", table, stmt, string(payload))
}

func (b *Backend) Update(ctx context.Context, table string, patch any, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	records, err := decodeRows(patch)
	if err != nil || len(records) != 1 {
		return nil, fmt.Errorf("postgres update %s: patch must be a single object", table)
	}
	keys := unionKeys(records)
	if len(keys) == 0 {
		return b.Select(ctx, table, store.AllColumns, filters...)
	}
	payload, err := json.Marshal(records[0])
	if err != nil {
		return nil, fmt.Errorf("postgres update %s: %w", table, err)
	}

	set := make([]string, len(keys))
	for i, k := range keys {
		set[i] = fmt.Sprintf("%s = p.%s", ident(k), ident(k))
	}
	where, args := whereClause(table, filters, 2)
	stmt := fmt.Sprintf("UPDATE %s SET %s FROM json_populate_record(NULL::%s, $1::json) p%s RETURNING %s.*",
		ident(table), strings.Join(set, ", "), ident(table), where, ident(table))
	return b.query(ctx, "update", table, stmt, append([]any{string(payload)}, args...)...)
}

func (b *Backend) Delete(ctx context.Context, table string, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	where, args := whereClause(table, filters, 1)
	stmt := fmt.Sprintf("DELETE FROM %s%s RETURNING *", ident(table), where)
	return b.query(ctx, "delete", table, stmt, args...)
}

// WithTx runs fn against a backend bound to one transaction.
func (b *Backend) WithTx(ctx context.Context, fn func(tx store.Backend) error) error {
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Backend{db: tx, log: b.log}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			b.log.Warnw("Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.db.(store.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (b *Backend) query(ctx context.Context, op, table, stmt string, args ...any) ([]byte, error) {
	var out []byte
	if err := b.db.QueryRow(ctx, fmt.Sprintf(aggregate, stmt), args...).Scan(&out); err != nil {
		return nil, fmt.Errorf("postgres %s %s: %w", op, table, err)
	}
	b.log.Debugw("Statement executed", "op", op, "table", table, "bytes", len(out))
	return out, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func projection(columns string) string {
	cols := store.Columns(columns)
	if cols == nil {
		return "*"
	}
	return columnList(cols)
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
	}
	return strings.Join(quoted, ", ")
}

// whereClause compares columns as text so that uuid and text keys take the same arguments.
func whereClause(table string, filters []store.Filter, firstArg int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		col := ident(table) + "." + ident(f.Column)
		n := firstArg + len(args)
		switch f.Op {
		case store.OpIn:
			conds = append(conds, fmt.Sprintf("%s::text = ANY($%d)", col, n))
			args = append(args, f.Values)
		default:
			conds = append(conds, fmt.Sprintf("%s::text = $%d", col, n))
			var v string
			if len(f.Values) > 0 {
				v = f.Values[0]
			}
			args = append(args, v)
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func decodeRows(v any) ([]map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var rows []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return []map[string]json.RawMessage{row}, nil
}

func unionKeys(rows []map[string]json.RawMessage) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
