package balance_test

import (
	"context"
	"os"
	"testing"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/balance"
	"github.com/NomadCrew/splitly-backend/internal/repository"
	"github.com/NomadCrew/splitly-backend/internal/store"
	"github.com/NomadCrew/splitly-backend/internal/store/storetest"
	"github.com/NomadCrew/splitly-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const groupID = "g1"

type scenario struct {
	Name    string `yaml:"name"`
	Persons []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"persons"`
	Expenses []struct {
		ID     string  `yaml:"id"`
		Payer  string  `yaml:"payer"`
		Amount float64 `yaml:"amount"`
	} `yaml:"expenses"`
	Debtors []struct {
		Expense string  `yaml:"expense"`
		Person  string  `yaml:"person"`
		Amount  float64 `yaml:"amount"`
	} `yaml:"debtors"`
	Want types.Balances `yaml:"want"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var out []scenario
	require.NoError(t, yaml.Unmarshal(raw, &out))
	require.NotEmpty(t, out)
	return out
}

func (s scenario) seed(b *storetest.Backend) {
	b.Seed(store.TableGroups, types.Group{ID: groupID, Name: s.Name})
	for _, p := range s.Persons {
		b.Seed(store.TablePersons, types.Person{ID: p.ID, Name: p.Name, GroupID: groupID})
	}
	for _, e := range s.Expenses {
		b.Seed(store.TableExpenses, types.Expense{ID: e.ID, GroupID: groupID, Name: e.ID, Amount: e.Amount, PayerID: e.Payer})
	}
	for i, d := range s.Debtors {
		b.Seed(store.TableDebtors, types.ExpenseDebtor{
			ID:        d.Expense + "-" + d.Person + "-" + string(rune('a'+i)),
			ExpenseID: d.Expense,
			PersonID:  d.Person,
			Amount:    d.Amount,
		})
	}
}

func newAggregator(b store.Backend) *balance.Aggregator {
	return balance.NewAggregator(
		repository.NewGroupRepository(b),
		repository.NewPersonRepository(b),
		repository.NewExpenseRepository(b),
		repository.NewDebtorRepository(b),
	)
}

func TestCompute_Scenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			b := storetest.New()
			sc.seed(b)

			got, err := newAggregator(b).Compute(context.Background(), groupID)
			require.NoError(t, err)
			require.Len(t, got, len(sc.Want))
			for id, want := range sc.Want {
				bal, ok := got[id]
				require.True(t, ok, "missing balance for %s", id)
				assert.Equal(t, want.Name, bal.Name)
				assert.InDelta(t, want.Paid, bal.Paid, 1e-9)
				assert.InDelta(t, want.Owes, bal.Owes, 1e-9)
				assert.InDelta(t, want.Balance, bal.Balance, 1e-9)
			}
		})
	}
}

func TestCompute_Conservation(t *testing.T) {
	b := storetest.New()
	b.Seed(store.TableGroups, types.Group{ID: groupID, Name: "Trip"})
	ids := []string{"p1", "p2", "p3", "p4"}
	for _, id := range ids {
		b.Seed(store.TablePersons, types.Person{ID: id, Name: id, GroupID: groupID})
	}

	expenses := repository.NewExpenseRepository(b)
	amounts := []float64{100, 9.99, 47.5, 0.01, 1234.56}
	for i, amount := range amounts {
		_, _, err := expenses.CreateWithDebtors(context.Background(), types.ExpenseInput{
			Name:    "expense",
			GroupID: groupID,
			PayerID: ids[i%len(ids)],
			Amount:  amount,
			Debtors: ids[:1+i%len(ids)],
		})
		require.NoError(t, err)
	}

	got, err := newAggregator(b).Compute(context.Background(), groupID)
	require.NoError(t, err)
	assert.InDelta(t, 0, got.Total(), 1e-9)
}

func TestCompute_UnknownGroup(t *testing.T) {
	b := storetest.New()

	_, err := newAggregator(b).Compute(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.NotFoundError))
	assert.Zero(t, b.Calls(storetest.OpSelect, store.TablePersons))
}

func TestCompute_StoreFailurePropagates(t *testing.T) {
	b := storetest.New()
	b.Seed(store.TableGroups, types.Group{ID: groupID, Name: "Trip"})
	b.Seed(store.TablePersons, types.Person{ID: "p1", Name: "Alice", GroupID: groupID})
	b.Seed(store.TableExpenses, types.Expense{ID: "e1", GroupID: groupID, Name: "x", Amount: 1, PayerID: "p1"})
	b.FailOn(storetest.OpSelect, store.TableDebtors, assert.AnError, 0)

	_, err := newAggregator(b).Compute(context.Background(), groupID)
	assert.True(t, apperrors.IsType(err, apperrors.StoreError))
}

func TestCompute_Idempotent(t *testing.T) {
	b := storetest.New()
	sc := loadScenarios(t)[1]
	sc.seed(b)
	agg := newAggregator(b)

	first, err := agg.Compute(context.Background(), groupID)
	require.NoError(t, err)
	second, err := agg.Compute(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_BatchesDebtorLookup(t *testing.T) {
	b := storetest.New()
	loadScenarios(t)[1].seed(b)

	_, err := newAggregator(b).Compute(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Calls(storetest.OpSelect, store.TableDebtors))
}
