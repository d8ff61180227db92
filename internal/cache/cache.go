// Package cache is the read-through, write-invalidate cache in front of the
// backing store.
//
// Values have one of two shapes. A collection is a hash whose fields are item
// ids and whose values are JSON items. An object is a single JSON value. Reads
// never fail because of the cache: any store error is a miss. Writes never fail
// either: errors are logged and the entry is left to the next invalidation.
//
// Population after a read miss is deferred to a Scheduler. Every key carries a
// process-local generation that invalidations and patches bump; a population
// whose snapshot generation is stale is dropped, and one that raced a bump
// deletes what it wrote. Generations are only tracked while a population of
// the key is pending, so the table is bounded by in-flight work.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	apperrors "github.com/NomadCrew/splitly-backend/errors"
	"github.com/NomadCrew/splitly-backend/internal/cachekeys"
	"github.com/NomadCrew/splitly-backend/logger"
	"go.uber.org/zap"
)

const (
	shapeCollection = "collection"
	shapeObject     = "object"

	opPopulateCollection = "populate_collection"
	opPopulateObject     = "populate_object"

	defaultWriteTimeout = 5 * time.Second
)

// Identifiable items can be stored in a collection.
type Identifiable interface {
	GetID() string
}

type Cache struct {
	store        Store
	tasks        Scheduler
	log          *zap.SugaredLogger
	metrics      *metrics
	writeTimeout time.Duration

	mu   sync.Mutex
	gens map[string]*generation
}

type generation struct {
	value   uint64
	pending int
}

type Option func(*Cache)

// WithWriteTimeout bounds patch and invalidation calls made on behalf of a mutation.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Cache) { c.log = log }
}

func New(store Store, tasks Scheduler, opts ...Option) *Cache {
	c := &Cache{
		store:        store,
		tasks:        tasks,
		log:          logger.GetLogger().Named("cache"),
		metrics:      getMetrics(),
		writeTimeout: defaultWriteTimeout,
		gens:         make(map[string]*generation),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type putOptions struct {
	ttl time.Duration
}

// PutOption configures how a populated entry is stored.
type PutOption func(*putOptions)

// WithTTL expires the entry after d. Without it entries live until invalidated.
func WithTTL(d time.Duration) PutOption {
	return func(o *putOptions) { o.ttl = d }
}

func buildPutOptions(opts []PutOption) putOptions {
	var o putOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// acquire snapshots the generation of key for a population. Every acquire
// is paired with one release.
func (c *Cache) acquire(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gens[key]
	if !ok {
		g = &generation{}
		c.gens[key] = g
	}
	g.pending++
	return g.value
}

func (c *Cache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.gens[key]
	if !ok {
		return
	}
	g.pending--
	if g.pending <= 0 {
		delete(c.gens, key)
	}
}

func (c *Cache) current(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.gens[key]; ok {
		return g.value
	}
	return 0
}

// bump only touches keys with a pending population; for the others there is
// no snapshot to invalidate.
func (c *Cache) bump(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if g, ok := c.gens[k]; ok {
			g.value++
		}
	}
}

// detach keeps write-path calls alive when the triggering request is cancelled.
func (c *Cache) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
}

func (c *Cache) failed(op, key string, err error) {
	c.metrics.errors.WithLabelValues(op).Inc()
	c.log.Warnw("Cache operation failed", "op", op, "key", key, "error", apperrors.CacheUnavailable(op, err))
}

func (c *Cache) record(shape, key, result string) {
	c.metrics.requests.WithLabelValues(shape, cachekeys.Family(key), result).Inc()
}

// schedule submits write as a population of key and takes over the
// snapshot acquired for gen.
func (c *Cache) schedule(op, key string, gen uint64, write func(ctx context.Context) error) {
	task := Task{
		Op:  op,
		Key: key,
		Run: func(ctx context.Context) error {
			defer c.release(key)
			if c.current(key) != gen {
				c.metrics.dropped.WithLabelValues("stale").Inc()
				return nil
			}
			if err := write(ctx); err != nil {
				c.metrics.errors.WithLabelValues(op).Inc()
				return err
			}
			if c.current(key) != gen {
				c.metrics.dropped.WithLabelValues("raced").Inc()
				return c.store.Del(ctx, key)
			}
			return nil
		},
	}
	if !c.tasks.Submit(task) {
		c.release(key)
		c.log.Debugw("Cache population not scheduled", "op", op, "key", key)
	}
}

// GetCollection returns the items of a collection ordered by id, and false on a miss.
func GetCollection[T Identifiable](ctx context.Context, c *Cache, key string) ([]T, bool) {
	fields, err := c.store.HGetAll(ctx, key)
	if err != nil {
		c.failed("hgetall", key, err)
		c.record(shapeCollection, key, "error")
		return nil, false
	}
	if len(fields) == 0 {
		c.record(shapeCollection, key, "miss")
		return nil, false
	}

	items := make([]T, 0, len(fields))
	for _, raw := range fields {
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			c.failed("decode", key, err)
			c.record(shapeCollection, key, "error")
			return nil, false
		}
		items = append(items, item)
	}
	sortByID(items)
	c.record(shapeCollection, key, "hit")
	return items, true
}

// PutCollection schedules writing items as the content of key. Empty
// collections are not stored since an empty hash reads as a miss anyway.
func PutCollection[T Identifiable](c *Cache, key string, items []T, opts ...PutOption) {
	putCollection(c, key, items, c.acquire(key), buildPutOptions(opts))
}

// putCollection consumes the snapshot acquired for gen.
func putCollection[T Identifiable](c *Cache, key string, items []T, gen uint64, o putOptions) {
	if len(items) == 0 {
		c.release(key)
		return
	}
	fields := make(map[string]string, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			c.release(key)
			c.failed("encode", key, err)
			return
		}
		fields[item.GetID()] = string(raw)
	}
	c.schedule(opPopulateCollection, key, gen, func(ctx context.Context) error {
		return c.store.HSet(ctx, key, fields, o.ttl)
	})
}

// PutItem upserts one item into every listed collection that is already cached.
// Absent collections are left absent so a lone item never poses as a full list.
func PutItem[T Identifiable](ctx context.Context, c *Cache, item T, keys ...string) {
	ctx, cancel := c.detach(ctx)
	defer cancel()

	raw, err := json.Marshal(item)
	if err != nil {
		c.failed("encode", item.GetID(), err)
		c.invalidate(ctx, keys...)
		return
	}
	c.bump(keys...)
	for _, key := range keys {
		exists, err := c.store.Exists(ctx, key)
		if err != nil {
			c.failed("exists", key, err)
			c.dropKey(ctx, key)
			continue
		}
		if !exists {
			continue
		}
		if err := c.store.HSet(ctx, key, map[string]string{item.GetID(): string(raw)}, 0); err != nil {
			c.failed("hset", key, err)
			c.dropKey(ctx, key)
		}
	}
}

// RemoveItem deletes one item from every listed collection.
func RemoveItem(ctx context.Context, c *Cache, id string, keys ...string) {
	ctx, cancel := c.detach(ctx)
	defer cancel()

	c.bump(keys...)
	for _, key := range keys {
		if err := c.store.HDel(ctx, key, id); err != nil {
			c.failed("hdel", key, err)
			c.dropKey(ctx, key)
		}
	}
}

// Invalidate deletes keys outright.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	ctx, cancel := c.detach(ctx)
	defer cancel()
	c.invalidate(ctx, keys...)
}

// InvalidateMany is Invalidate for a precomputed key list.
func (c *Cache) InvalidateMany(ctx context.Context, keys []string) {
	c.Invalidate(ctx, keys...)
}

func (c *Cache) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.bump(keys...)
	if err := c.store.Del(ctx, keys...); err != nil {
		c.failed("del", keys[0], err)
	}
}

// dropKey is the fallback when a patch could not be applied.
func (c *Cache) dropKey(ctx context.Context, key string) {
	if err := c.store.Del(ctx, key); err != nil {
		c.failed("del", key, err)
	}
}

// GetObject returns the value stored at key and false on a miss.
func GetObject[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var zero T
	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		c.record(shapeObject, key, "miss")
		return zero, false
	}
	if err != nil {
		c.failed("get", key, err)
		c.record(shapeObject, key, "error")
		return zero, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		c.failed("decode", key, err)
		c.record(shapeObject, key, "error")
		return zero, false
	}
	c.record(shapeObject, key, "hit")
	return v, true
}

// PutObject schedules writing v under key.
func PutObject[T any](c *Cache, key string, v T, opts ...PutOption) {
	putObject(c, key, v, c.acquire(key), buildPutOptions(opts))
}

func putObject[T any](c *Cache, key string, v T, gen uint64, o putOptions) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.release(key)
		c.failed("encode", key, err)
		return
	}
	c.schedule(opPopulateObject, key, gen, func(ctx context.Context) error {
		return c.store.Set(ctx, key, raw, o.ttl)
	})
}

// ReadCollection serves key from the cache or, on a miss, from fetch, and then
// schedules the population of key. Results are ordered by id either way.
func ReadCollection[T Identifiable](ctx context.Context, c *Cache, key string, fetch func(context.Context) ([]T, error), opts ...PutOption) ([]T, error) {
	if items, ok := GetCollection[T](ctx, c, key); ok {
		return items, nil
	}
	gen := c.acquire(key)
	items, err := fetch(ctx)
	if err != nil {
		c.release(key)
		return nil, err
	}
	sortByID(items)
	putCollection(c, key, items, gen, buildPutOptions(opts))
	return items, nil
}

// ReadObject is ReadCollection for single-object keys.
func ReadObject[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error), opts ...PutOption) (T, error) {
	if v, ok := GetObject[T](ctx, c, key); ok {
		return v, nil
	}
	gen := c.acquire(key)
	v, err := fetch(ctx)
	if err != nil {
		c.release(key)
		var zero T
		return zero, err
	}
	putObject(c, key, v, gen, buildPutOptions(opts))
	return v, nil
}

// Ping reports whether the cache store is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func sortByID[T Identifiable](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].GetID() < items[j].GetID()
	})
}
