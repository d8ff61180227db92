package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cache/cachetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i item) GetID() string { return i.ID }

type summary struct {
	Total float64 `json:"total"`
}

func setup(t *testing.T) (*cache.Cache, *cachetest.Store, *cachetest.Scheduler) {
	t.Helper()
	store := cachetest.NewStore()
	sched := cachetest.NewScheduler()
	return cache.New(store, sched), store, sched
}

func fetcher(items []item, calls *int32) func(context.Context) ([]item, error) {
	return func(context.Context) ([]item, error) {
		atomic.AddInt32(calls, 1)
		return append([]item(nil), items...), nil
	}
}

func TestReadCollection_ColdAndWarmAgree(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	var calls int32
	fetch := fetcher([]item{{ID: "b", Name: "Bob"}, {ID: "a", Name: "Alice"}}, &calls)

	cold, err := cache.ReadCollection(ctx, c, "persons:all", fetch)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}}, cold)

	tasks := sched.Submitted()
	require.Len(t, tasks, 1)
	assert.Equal(t, "populate_collection", tasks[0].Op)
	assert.Equal(t, "persons:all", tasks[0].Key)
	assert.False(t, store.Has("persons:all"), "population must not run on the read path")

	require.NoError(t, sched.RunAll(ctx))
	assert.Len(t, store.Fields("persons:all"), 2)

	warm, err := cache.ReadCollection(ctx, c, "persons:all", fetch)
	require.NoError(t, err)
	assert.Equal(t, cold, warm)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestReadCollection_FetchErrorPropagates(t *testing.T) {
	c, _, sched := setup(t)
	boom := errors.New("store down")

	_, err := cache.ReadCollection(context.Background(), c, "groups:all", func(context.Context) ([]item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sched.Submitted())
}

func TestReadCollection_EmptyIsNotCached(t *testing.T) {
	c, store, sched := setup(t)

	items, err := cache.ReadCollection(context.Background(), c, "groups:all", func(context.Context) ([]item, error) {
		return []item{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, sched.Submitted())
	assert.False(t, store.Has("groups:all"))
}

func TestInvalidate_DropsStalePopulation(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	var calls int32

	_, err := cache.ReadCollection(ctx, c, "expenses:all", fetcher([]item{{ID: "e1", Name: "old"}}, &calls))
	require.NoError(t, err)

	// a write lands before the deferred population runs
	c.Invalidate(ctx, "expenses:all")
	require.NoError(t, sched.RunAll(ctx))
	assert.False(t, store.Has("expenses:all"))

	fresh, err := cache.ReadCollection(ctx, c, "expenses:all", fetcher([]item{{ID: "e1", Name: "new"}}, &calls))
	require.NoError(t, err)
	assert.Equal(t, "new", fresh[0].Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// hookStore runs onHSet just before each HSet reaches the store.
type hookStore struct {
	*cachetest.Store
	onHSet func()
}

func (h *hookStore) HSet(ctx context.Context, key string, fields map[string]string, ttl time.Duration) error {
	if hook := h.onHSet; hook != nil {
		h.onHSet = nil
		hook()
	}
	return h.Store.HSet(ctx, key, fields, ttl)
}

func TestPopulation_RacingInvalidationLeavesNoStaleEntry(t *testing.T) {
	inner := cachetest.NewStore()
	store := &hookStore{Store: inner}
	sched := cachetest.NewScheduler()
	c := cache.New(store, sched)
	ctx := context.Background()

	var calls int32
	_, err := cache.ReadCollection(ctx, c, "debtors:all", fetcher([]item{{ID: "d1"}}, &calls))
	require.NoError(t, err)

	// the invalidation lands after the population passed its generation check
	store.onHSet = func() {
		c.Invalidate(ctx, "debtors:all")
	}
	require.NoError(t, sched.RunAll(ctx))
	assert.False(t, inner.Has("debtors:all"))
}

func TestPutItem_PatchesOnlyCachedCollections(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	var calls int32

	_, err := cache.ReadCollection(ctx, c, "expenses:all", fetcher([]item{{ID: "e1", Name: "Taxi"}}, &calls))
	require.NoError(t, err)
	require.NoError(t, sched.RunAll(ctx))

	cache.PutItem(ctx, c, item{ID: "e2", Name: "Dinner"}, "expenses:all", "groups:g1:expenses")

	assert.Len(t, store.Fields("expenses:all"), 2)
	assert.False(t, store.Has("groups:g1:expenses"))

	got, ok := cache.GetCollection[item](ctx, c, "expenses:all")
	require.True(t, ok)
	assert.Equal(t, []item{{ID: "e1", Name: "Taxi"}, {ID: "e2", Name: "Dinner"}}, got)
}

func TestRemoveItem(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()

	cache.PutCollection(c, "persons:all", []item{{ID: "p1"}, {ID: "p2"}})
	require.NoError(t, sched.RunAll(ctx))

	cache.RemoveItem(ctx, c, "p1", "persons:all")
	assert.Equal(t, []string{"p2"}, keys(store.Fields("persons:all")))
}

func TestObject_TTL(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	var calls int32
	fetch := func(context.Context) (summary, error) {
		atomic.AddInt32(&calls, 1)
		return summary{Total: 42}, nil
	}

	v, err := cache.ReadObject(ctx, c, "groups:g1:balances", fetch, cache.WithTTL(15*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.Total)
	require.NoError(t, sched.RunAll(ctx))
	assert.Equal(t, 15*time.Second, store.TTL("groups:g1:balances"))

	_, err = cache.ReadObject(ctx, c, "groups:g1:balances", fetch, cache.WithTTL(15*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	store.Advance(16 * time.Second)
	_, ok := cache.GetObject[summary](ctx, c, "groups:g1:balances")
	assert.False(t, ok)
}

func TestObject_NoTTLByDefault(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()

	cache.PutObject(c, "groups:g1", item{ID: "g1", Name: "Trip"})
	require.NoError(t, sched.RunAll(ctx))
	assert.Equal(t, time.Duration(0), store.TTL("groups:g1"))

	got, ok := cache.GetObject[item](ctx, c, "groups:g1")
	require.True(t, ok)
	assert.Equal(t, "Trip", got.Name)
}

func TestCollection_TTL(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	var calls int32

	_, err := cache.ReadCollection(ctx, c, "groups:g1:persons", fetcher([]item{{ID: "p1"}, {ID: "p2"}}, &calls), cache.WithTTL(30*time.Second))
	require.NoError(t, err)
	require.NoError(t, sched.RunAll(ctx))
	assert.Equal(t, 30*time.Second, store.TTL("groups:g1:persons"))

	store.Advance(31 * time.Second)
	_, ok := cache.GetCollection[item](ctx, c, "groups:g1:persons")
	assert.False(t, ok)
}

func TestStoreFailures_AreSwallowed(t *testing.T) {
	c, store, sched := setup(t)
	ctx := context.Background()
	store.Fail(errors.New("connection refused"))
	var calls int32

	items, err := cache.ReadCollection(ctx, c, "groups:all", fetcher([]item{{ID: "g1"}}, &calls))
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Error(t, sched.RunAll(ctx))

	assert.NotPanics(t, func() {
		c.Invalidate(ctx, "groups:all")
		cache.PutItem(ctx, c, item{ID: "g2"}, "groups:all")
		cache.RemoveItem(ctx, c, "g1", "groups:all")
	})
	assert.Error(t, c.Ping(ctx))
}

func TestRejectedPopulation_StillServesRead(t *testing.T) {
	c, store, sched := setup(t)
	sched.Reject(true)
	var calls int32

	items, err := cache.ReadCollection(context.Background(), c, "groups:all", fetcher([]item{{ID: "g1"}}, &calls))
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.False(t, store.Has("groups:all"))
}

// ctxStore refuses calls on a done context, like a network client would.
type ctxStore struct {
	*cachetest.Store
}

func (s ctxStore) Del(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Store.Del(ctx, keys...)
}

func TestInvalidate_SurvivesCancelledRequest(t *testing.T) {
	inner := cachetest.NewStore()
	c := cache.New(ctxStore{Store: inner}, cachetest.NewScheduler())
	require.NoError(t, inner.Set(context.Background(), "groups:g1", []byte(`{}`), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Invalidate(ctx, "groups:g1")

	assert.False(t, inner.Has("groups:g1"))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
