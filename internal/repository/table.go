// Package repository maps entity operations onto backing store tables.
package repository

import (
	"context"
	"encoding/json"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
)

const colID = "id"

// table decodes the JSON rows a backend returns for one entity type. Every
// backend failure is reported as StoreUnavailable.
type table[T any] struct {
	backend store.Backend
	name    string
	entity  string
}

func newTable[T any](backend store.Backend, name, entity string) table[T] {
	return table[T]{backend: backend, name: name, entity: entity}
}

func (t table[T]) list(ctx context.Context, filters ...store.Filter) ([]T, error) {
	raw, err := t.backend.Select(ctx, t.name, store.AllColumns, filters...)
	if err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".select", err)
	}
	return t.decode("select", raw)
}

// column returns one column of every matching row.
func (t table[T]) column(ctx context.Context, column string, filters ...store.Filter) ([]string, error) {
	raw, err := t.backend.Select(ctx, t.name, column, filters...)
	if err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".select", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".select", err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if v, ok := r[column].(string); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (t table[T]) get(ctx context.Context, id string) (*T, error) {
	rows, err := t.list(ctx, store.Eq(colID, id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(t.entity, id)
	}
	return &rows[0], nil
}

func (t table[T]) insert(ctx context.Context, row any) (*T, error) {
	rows, err := t.insertMany(ctx, row)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.StoreUnavailable(t.name+".insert", errNoRowReturned)
	}
	return &rows[0], nil
}

func (t table[T]) insertMany(ctx context.Context, rows any) ([]T, error) {
	raw, err := t.backend.Insert(ctx, t.name, rows)
	if err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".insert", err)
	}
	return t.decode("insert", raw)
}

// update applies patch to the row with id. An empty patch reads the row back.
func (t table[T]) update(ctx context.Context, id string, patch any) (*T, error) {
	if isEmptyPatch(patch) {
		return t.get(ctx, id)
	}
	raw, err := t.backend.Update(ctx, t.name, patch, store.Eq(colID, id))
	if err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".update", err)
	}
	return t.first("update", id, raw)
}

func (t table[T]) delete(ctx context.Context, id string) (*T, error) {
	raw, err := t.backend.Delete(ctx, t.name, store.Eq(colID, id))
	if err != nil {
		return nil, apperrors.StoreUnavailable(t.name+".delete", err)
	}
	return t.first("delete", id, raw)
}

func (t table[T]) first(op, id string, raw []byte) (*T, error) {
	rows, err := t.decode(op, raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound(t.entity, id)
	}
	return &rows[0], nil
}

func (t table[T]) decode(op string, raw []byte) ([]T, error) {
	rows := make([]T, 0)
	if len(raw) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, apperrors.StoreUnavailable(t.name+"."+op, err)
	}
	return rows, nil
}

func isEmptyPatch(patch any) bool {
	raw, err := json.Marshal(patch)
	return err == nil && string(raw) == "{}"
}
