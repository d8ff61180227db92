// Package supabase implements store.Backend over the Supabase PostgREST API.
package supabase

import (
	"context"
	"fmt"
	"strings"

	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/logger"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const returnRepresentation = "representation"

// Backend issues table requests through the supabase client. PostgREST has no
// multi-statement transactions, so Backend does not implement store.Transactor.
type Backend struct {
	client *supa.Client
	log    *zap.SugaredLogger
}

var (
	_ store.Backend = (*Backend)(nil)
	_ store.Pinger  = (*Backend)(nil)
)

// New builds a client for the project at url authenticated with the service key.
func New(url, serviceKey, schema string) (*Backend, error) {
	if schema == "" {
		schema = "public"
	}
	client, err := supa.NewClient(url, serviceKey, &supa.ClientOptions{Schema: schema})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Backend{client: client, log: logger.GetLogger().Named("supabase")}, nil
}

func (b *Backend) Select(ctx context.Context, table, columns string, filters ...store.Filter) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cols := store.AllColumns
	if c := store.Columns(columns); c != nil {
		cols = strings.Join(c, ",")
	}
	q := applyFilters(b.client.From(table).Select(cols, "", false), filters)
	return b.execute("select", table, q)
}

func (b *Backend) Insert(ctx context.Context, table string, rows any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := b.client.From(table).Insert(rows, false, "", returnRepresentation, "")
	return b.execute("insert", table, q)
}

func (b *Backend) Update(ctx context.Context, table string, patch any, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := applyFilters(b.client.From(table).Update(patch, returnRepresentation, ""), filters)
	return b.execute("update", table, q)
}

func (b *Backend) Delete(ctx context.Context, table string, filters ...store.Filter) ([]byte, error) {
	if err := store.RequireFilter(filters); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := applyFilters(b.client.From(table).Delete(returnRepresentation, ""), filters)
	return b.execute("delete", table, q)
}

// Ping reads at most one group id to check that the API answers.
func (b *Backend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q := b.client.From(store.TableGroups).Select("id", "", false).Limit(1, "")
	_, err := b.execute("ping", store.TableGroups, q)
	return err
}

func (b *Backend) execute(op, table string, q *postgrest.FilterBuilder) ([]byte, error) {
	data, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("supabase %s %s: %w", op, table, err)
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	b.log.Debugw("Request executed", "op", op, "table", table, "bytes", len(data))
	return data, nil
}

func applyFilters(q *postgrest.FilterBuilder, filters []store.Filter) *postgrest.FilterBuilder {
	for _, f := range filters {
		switch f.Op {
		case store.OpIn:
			q = q.In(f.Column, f.Values)
		default:
			var v string
			if len(f.Values) > 0 {
				v = f.Values[0]
			}
			q = q.Eq(f.Column, v)
		}
	}
	return q
}
