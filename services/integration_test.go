//go:build integration

package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/db"
	"github.com/NomadCrew/splitly-backend/internal/balance"
	"github.com/NomadCrew/splitly-backend/internal/cache"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/internal/store/postgres"
	"github.com/NomadCrew/splitly-backend/services"
	"github.com/NomadCrew/splitly-backend/types"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("splitly"),
		tcpostgres.WithUsername("splitly"),
		tcpostgres.WithPassword("splitly"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func startRedis(t *testing.T, ctx context.Context) *redis.Client {
	t.Helper()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb, err := config.InitRedis(ctx, &config.RedisConfig{Address: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPostgresAndRedis_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(t, ctx)
	rdb := startRedis(t, ctx)

	require.NoError(t, db.RunMigrations(dsn))
	require.NoError(t, db.RunMigrations(dsn), "migrations are idempotent")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	backend := postgres.New(pool)
	require.NoError(t, backend.Ping(ctx))

	queue := cache.NewTaskQueue(config.WorkerPoolConfig{MaxWorkers: 2, QueueSize: 100, ShutdownTimeoutSeconds: 5})
	queue.Start()
	t.Cleanup(func() { _ = queue.Shutdown(context.Background()) })

	c := cache.New(cache.NewRedisStore(rdb), queue)
	stores := services.NewStores(backend)
	agg := balance.NewAggregator(stores.Groups, stores.Persons, stores.Expenses, stores.Debtors)
	groups := services.NewGroupService(stores, c, agg, 15*time.Second)
	expenses := services.NewExpenseService(stores, c)
	persons := services.NewPersonService(stores, c)

	group, err := groups.CreateGroup(ctx, types.GroupInput{Name: "Ski trip"})
	require.NoError(t, err)

	var ids []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		p, err := persons.CreatePerson(ctx, types.PersonInput{Name: name, GroupID: group.ID})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	expense, debtors, err := expenses.CreateExpense(ctx, types.ExpenseInput{
		Name: "Cabin", GroupID: group.ID, PayerID: ids[0], Amount: 100, Debtors: ids,
	})
	require.NoError(t, err)
	require.Len(t, debtors, 3)
	assert.Equal(t, 33.34, debtors[0].Amount)

	cold, err := groups.GroupExpenses(ctx, group.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		n, err := rdb.HLen(ctx, cachekeys.GroupExpenses(group.ID)).Result()
		return err == nil && n == 1
	}, 5*time.Second, 50*time.Millisecond)
	warm, err := groups.GroupExpenses(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, warm, 1)
	assert.Equal(t, cold[0].ID, warm[0].ID)
	assert.Equal(t, cold[0].Amount, warm[0].Amount)
	assert.True(t, cold[0].CreatedAt.Equal(warm[0].CreatedAt))

	balances, err := groups.GroupBalances(ctx, group.ID)
	require.NoError(t, err)
	assert.InDelta(t, 66.66, balances[ids[0]].Balance, 1e-9)
	assert.InDelta(t, 0, balances.Total(), 1e-9)
	require.Eventually(t, func() bool {
		ttl, err := rdb.TTL(ctx, cachekeys.GroupBalances(group.ID)).Result()
		return err == nil && ttl > 0 && ttl <= 15*time.Second
	}, 5*time.Second, 50*time.Millisecond)

	_, err = expenses.DeleteExpense(ctx, expense.ID)
	require.NoError(t, err)
	remaining, err := stores.Debtors.ListByExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining, "debtors cascade with their expense")

	after, err := groups.GroupExpenses(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, after)

	_, err = groups.DeleteGroup(ctx, group.ID)
	require.NoError(t, err)
	left, err := stores.Persons.ListByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
