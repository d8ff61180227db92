// Package cachetest provides in-memory doubles for the cache store and scheduler.
package cachetest

import (
	"context"
	"sync"
	"time"

	"github.com/NomadCrew/splitly-backend/internal/cache"
)

type entry struct {
	value   []byte
	hash    map[string]string
	expires time.Time
}

// Store is an in-memory cache.Store. Its clock stands still until Advance is
// called. Fail makes every later call return an error until Recover is called.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	err     error
	now     func() time.Time
}

var _ cache.Store = (*Store)(nil)

func NewStore() *Store {
	base := time.Now()
	return &Store{entries: make(map[string]*entry), now: func() time.Time { return base }}
}

func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Recover() { s.Fail(nil) }

// Advance moves the store clock forward, expiring keys whose TTL elapsed.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.now()
	s.now = func() time.Time { return base.Add(d) }
}

// Has reports whether key is present and unexpired.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key) != nil
}

// Fields returns a copy of the hash stored at key.
func (s *Store) Fields(key string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]string{}
	if e := s.live(key); e != nil {
		for k, v := range e.hash {
			out[k] = v
		}
	}
	return out
}

// TTL returns the remaining lifetime of key, zero when it has none.
func (s *Store) TTL(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(key)
	if e == nil || e.expires.IsZero() {
		return 0
	}
	return e.expires.Sub(s.now())
}

func (s *Store) live(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, key)
		return nil
	}
	return e
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	e := s.live(key)
	if e == nil || e.value == nil {
		return nil, cache.ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	e := &entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *Store) HGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]string{}
	if e := s.live(key); e != nil {
		for k, v := range e.hash {
			out[k] = v
		}
	}
	return out, nil
}

func (s *Store) HSet(_ context.Context, key string, fields map[string]string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	e := s.live(key)
	if e == nil {
		e = &entry{hash: map[string]string{}}
		s.entries[key] = e
	}
	if e.hash == nil {
		e.hash = map[string]string{}
	}
	for k, v := range fields {
		e.hash[k] = v
	}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	return nil
}

func (s *Store) HDel(_ context.Context, key string, fields ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	e := s.live(key)
	if e == nil {
		return nil
	}
	for _, f := range fields {
		delete(e.hash, f)
	}
	if len(e.hash) == 0 && e.value == nil {
		delete(s.entries, key)
	}
	return nil
}

func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.live(key) != nil, nil
}

func (s *Store) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if e := s.live(key); e != nil {
		e.expires = s.now().Add(ttl)
	}
	return nil
}

func (s *Store) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}

func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Scheduler records submitted tasks and runs them only when asked.
type Scheduler struct {
	mu      sync.Mutex
	pending []cache.Task
	seen    []cache.Task
	reject  bool
}

var _ cache.Scheduler = (*Scheduler)(nil)

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Reject makes Submit drop every task, as a full queue would.
func (s *Scheduler) Reject(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reject = reject
}

func (s *Scheduler) Submit(task cache.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return false
	}
	s.pending = append(s.pending, task)
	s.seen = append(s.seen, task)
	return true
}

// Submitted returns every accepted task, run or not.
func (s *Scheduler) Submitted() []cache.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]cache.Task(nil), s.seen...)
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// RunAll runs pending tasks in submission order and returns the first error.
func (s *Scheduler) RunAll(ctx context.Context) error {
	s.mu.Lock()
	tasks := s.pending
	s.pending = nil
	s.mu.Unlock()

	var firstErr error
	for _, t := range tasks {
		if err := t.Run(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
