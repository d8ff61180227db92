// Package storetest provides an in-memory store.Backend for tests.
package storetest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/google/uuid"
)

// Operation names used by FailOn and Calls.
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

type row = map[string]any

type failure struct {
	op, table string
	err       error
	remaining int
}

// Backend keeps every table as an ordered slice of rows. Rows inserted without
// an id get a uuid, and rows of timestamped tables get created_at.
type Backend struct {
	mu       sync.Mutex
	tables   map[string][]row
	failures []*failure
	calls    map[string]int
	now      func() time.Time
}

var _ store.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{
		tables: make(map[string][]row),
		calls:  make(map[string]int),
		now:    time.Now,
	}
}

var timestamped = map[string]bool{
	store.TableGroups:   true,
	store.TableExpenses: true,
}

// Seed inserts rows verbatim, bypassing failure injection and call counting.
func (b *Backend) Seed(table string, rows ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range rows {
		decoded, err := decode(r)
		if err != nil {
			panic(fmt.Sprintf("storetest: seed %s: %v", table, err))
		}
		for _, d := range decoded {
			b.tables[table] = append(b.tables[table], b.complete(table, d))
		}
	}
}

// FailOn makes the next call of op on table return err. times <= 0 fails forever.
func (b *Backend) FailOn(op, table string, err error, times int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, &failure{op: op, table: table, err: err, remaining: times})
}

// Calls reports how many times op ran on table, failed calls included.
func (b *Backend) Calls(op, table string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op+" "+table]
}

// Rows returns a copy of a table's rows.
func (b *Backend) Rows(table string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.tables[table]))
	for i, r := range b.tables[table] {
		out[i] = clone(r)
	}
	return out
}

func (b *Backend) Select(ctx context.Context, table, columns string, filters ...store.Filter) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, OpSelect, table); err != nil {
		return nil, err
	}
	cols := store.Columns(columns)
	out := make([]row, 0)
	for _, r := range b.tables[table] {
		if matches(r, filters) {
			out = append(out, project(r, cols))
		}
	}
	return json.Marshal(out)
}

func (b *Backend) Insert(ctx context.Context, table string, rows any) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, OpInsert, table); err != nil {
		return nil, err
	}
	decoded, err := decode(rows)
	if err != nil {
		return nil, err
	}
	out := make([]row, 0, len(decoded))
	for _, d := range decoded {
		r := b.complete(table, d)
		b.tables[table] = append(b.tables[table], r)
		out = append(out, clone(r))
	}
	return json.Marshal(out)
}

func (b *Backend) Update(ctx context.Context, table string, patch any, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, OpUpdate, table); err != nil {
		return nil, err
	}
	decoded, err := decode(patch)
	if err != nil || len(decoded) != 1 {
		return nil, fmt.Errorf("storetest: patch must be a single object")
	}
	out := make([]row, 0)
	for _, r := range b.tables[table] {
		if !matches(r, filters) {
			continue
		}
		for k, v := range decoded[0] {
			r[k] = v
		}
		out = append(out, clone(r))
	}
	return json.Marshal(out)
}

func (b *Backend) Delete(ctx context.Context, table string, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter(ctx, OpDelete, table); err != nil {
		return nil, err
	}
	kept := b.tables[table][:0:0]
	out := make([]row, 0)
	for _, r := range b.tables[table] {
		if matches(r, filters) {
			out = append(out, r)
			continue
		}
		kept = append(kept, r)
	}
	b.tables[table] = kept
	return json.Marshal(out)
}

// enter counts the call and applies any injected failure. Callers hold mu.
func (b *Backend) enter(ctx context.Context, op, table string) error {
	b.calls[op+" "+table]++
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, f := range b.failures {
		if f.op != op || f.table != table {
			continue
		}
		if f.remaining > 0 {
			f.remaining--
			if f.remaining == 0 {
				b.failures = append(b.failures[:i], b.failures[i+1:]...)
			}
		}
		return f.err
	}
	return nil
}

func (b *Backend) complete(table string, r row) row {
	if id, ok := r["id"]; !ok || id == nil || id == "" {
		r["id"] = uuid.NewString()
	}
	if timestamped[table] {
		if _, ok := r["created_at"]; !ok {
			r["created_at"] = b.now().UTC().Format(time.RFC3339Nano)
		}
	}
	return r
}

func matches(r row, filters []store.Filter) bool {
	for _, f := range filters {
		v, ok := r[f.Column]
		if !ok || v == nil {
			return false
		}
		s := fmt.Sprint(v)
		found := false
		for _, want := range f.Values {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func project(r row, cols []string) row {
	if cols == nil {
		return clone(r)
	}
	out := make(row, len(cols))
	for _, c := range cols {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}

func clone(r row) row {
	out := make(row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func decode(v any) ([]row, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var rows []row
		err := json.Unmarshal(raw, &rows)
		return rows, err
	}
	var r row
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return []row{r}, nil
}

// TxBackend adds all-or-nothing transactions to Backend by snapshotting its tables.
type TxBackend struct {
	*Backend
	txMu sync.Mutex
}

var _ store.Transactor = (*TxBackend)(nil)

func NewTx() *TxBackend {
	return &TxBackend{Backend: New()}
}

func (t *TxBackend) WithTx(ctx context.Context, fn func(tx store.Backend) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.mu.Lock()
	snapshot := make(map[string][]row, len(t.tables))
	for name, rows := range t.tables {
		copied := make([]row, len(rows))
		for i, r := range rows {
			copied[i] = clone(r)
		}
		snapshot[name] = copied
	}
	t.mu.Unlock()

	if err := fn(t.Backend); err != nil {
		t.mu.Lock()
		t.tables = snapshot
		t.mu.Unlock()
		return err
	}
	return nil
}
