package services

import (
	"context"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/types"
)

// PersonService invalidates on every write. Persons feed the balance names, so
// the group's balances are dropped with the person lists.
type PersonService struct {
	stores Stores
	cache  *cache.Cache
}

func NewPersonService(stores Stores, c *cache.Cache) *PersonService {
	return &PersonService{stores: stores, cache: c}
}

func (s *PersonService) ListPersons(ctx context.Context) ([]types.Person, error) {
	return cache.ReadCollection(ctx, s.cache, cachekeys.AllPersons, s.stores.Persons.ListAll)
}

func (s *PersonService) GetPerson(ctx context.Context, id string) (*types.Person, error) {
	return s.stores.Persons.GetByID(ctx, id)
}

func (s *PersonService) CreatePerson(ctx context.Context, input types.PersonInput) (*types.Person, error) {
	person, err := s.stores.Persons.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, person.GroupID)
	return person, nil
}

func (s *PersonService) UpdatePerson(ctx context.Context, id string, update types.PersonUpdate) (*types.Person, error) {
	before, err := s.stores.Persons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	person, err := s.stores.Persons.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, before.GroupID, person.GroupID)
	return person, nil
}

func (s *PersonService) DeletePerson(ctx context.Context, id string) (*types.Person, error) {
	person, err := s.stores.Persons.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, person.GroupID)
	return person, nil
}

func (s *PersonService) invalidate(ctx context.Context, groupIDs ...string) {
	keys := []string{cachekeys.AllPersons}
	seen := make(map[string]bool, len(groupIDs))
	for _, g := range groupIDs {
		if seen[g] {
			continue
		}
		seen[g] = true
		keys = append(keys, cachekeys.GroupPersons(g), cachekeys.GroupBalances(g))
	}
	s.cache.InvalidateMany(ctx, keys)
}
