package repository

import (
	"context"

	"github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/types"
)

type PersonRepository struct {
	persons table[types.Person]
}

func NewPersonRepository(backend store.Backend) *PersonRepository {
	return &PersonRepository{persons: newTable[types.Person](backend, store.TablePersons, "Person")}
}

func (r *PersonRepository) ListAll(ctx context.Context) ([]types.Person, error) {
	return r.persons.list(ctx)
}

func (r *PersonRepository) GetByID(ctx context.Context, id string) (*types.Person, error) {
	return r.persons.get(ctx, id)
}

func (r *PersonRepository) ListByGroup(ctx context.Context, groupID string) ([]types.Person, error) {
	return r.persons.list(ctx, store.Eq("group_id", groupID))
}

func (r *PersonRepository) ListByUser(ctx context.Context, userID string) ([]types.Person, error) {
	return r.persons.list(ctx, store.Eq("user_id", userID))
}

func (r *PersonRepository) Create(ctx context.Context, input types.PersonInput) (*types.Person, error) {
	if input.Name == "" || input.GroupID == "" {
		return nil, errors.ValidationFailed("invalid person", "name and group_id are required")
	}
	row := map[string]any{
		"name":     input.Name,
		"group_id": input.GroupID,
	}
	if input.UserID != nil {
		row["user_id"] = *input.UserID
	}
	return r.persons.insert(ctx, row)
}

func (r *PersonRepository) Update(ctx context.Context, id string, update types.PersonUpdate) (*types.Person, error) {
	return r.persons.update(ctx, id, update)
}

func (r *PersonRepository) Delete(ctx context.Context, id string) (*types.Person, error) {
	return r.persons.delete(ctx, id)
}
