package cache

import (
	"context"
	"sync"
	"time"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/logger"
	"go.uber.org/zap"
)

// Task is one deferred cache operation on Key.
type Task struct {
	Op  string
	Key string
	Run func(ctx context.Context) error
}

// Scheduler accepts tasks to run after the submitting request has moved on.
// Submit never blocks; it reports false when the task was dropped.
type Scheduler interface {
	Submit(task Task) bool
}

const defaultTaskTimeout = 10 * time.Second

// TaskQueue runs tasks on a bounded set of workers. Task contexts derive from the
// queue, not from the request that submitted them.
type TaskQueue struct {
	queue   chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	log     *zap.SugaredLogger
	metrics *metrics
	cfg     config.WorkerPoolConfig

	mu      sync.RWMutex
	running bool
	closed  bool
}

var _ Scheduler = (*TaskQueue)(nil)

// NewTaskQueue buffers up to cfg.QueueSize tasks. Start launches the workers.
func NewTaskQueue(cfg config.WorkerPoolConfig) *TaskQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskQueue{
		queue:   make(chan Task, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.GetLogger().Named("tasks"),
		metrics: getMetrics(),
		cfg:     cfg,
	}
}

// Start launches the workers. Repeated calls are no-ops.
func (q *TaskQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running || q.closed {
		q.log.Warn("Task queue already started or shut down")
		return
	}
	q.running = true

	q.log.Infow("Starting task queue",
		"maxWorkers", q.cfg.MaxWorkers,
		"queueSize", q.cfg.QueueSize)

	for i := 0; i < q.cfg.MaxWorkers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

func (q *TaskQueue) worker(id int) {
	defer q.wg.Done()
	for task := range q.queue {
		q.execute(id, task)
	}
	q.log.Debugw("Worker stopped", "workerId", id)
}

func (q *TaskQueue) execute(workerID int, task Task) {
	q.metrics.activeWorkers.Inc()
	q.metrics.queueDepth.Dec()
	defer q.metrics.activeWorkers.Dec()

	start := time.Now()
	ctx, cancel := context.WithTimeout(q.ctx, defaultTaskTimeout)
	defer cancel()

	if err := task.Run(ctx); err != nil {
		q.log.Warnw("Task failed",
			"op", task.Op,
			"key", task.Key,
			"workerId", workerID,
			"error", err,
			"duration", time.Since(start))
		q.metrics.taskErrors.Inc()
	}
	q.metrics.taskDuration.Observe(time.Since(start).Seconds())
	q.metrics.completed.Inc()
}

func (q *TaskQueue) Submit(task Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.dropped.WithLabelValues("shutdown").Inc()
		return false
	}
	select {
	case q.queue <- task:
		q.metrics.queueDepth.Inc()
		return true
	default:
		q.metrics.dropped.WithLabelValues("queue_full").Inc()
		q.log.Warnw("Task dropped - queue full",
			"op", task.Op,
			"key", task.Key,
			"queueSize", q.cfg.QueueSize)
		return false
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish. When ctx
// expires first, running tasks are cancelled and ctx.Err() is returned.
func (q *TaskQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.running = false
	close(q.queue)
	q.mu.Unlock()

	q.log.Info("Draining task queue...")

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.log.Info("Task queue drained")
		return nil
	case <-ctx.Done():
		q.cancel()
		q.log.Warn("Task queue shutdown timed out - cancelling remaining tasks")
		return ctx.Err()
	}
}

func (q *TaskQueue) QueueDepth() int {
	return len(q.queue)
}

func (q *TaskQueue) IsRunning() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.running
}

// InlineScheduler runs each task immediately on the caller's goroutine,
// for setups without a running worker pool.
type InlineScheduler struct {
	Log *zap.SugaredLogger
}

func (s InlineScheduler) Submit(task Task) bool {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTaskTimeout)
	defer cancel()
	if err := task.Run(ctx); err != nil && s.Log != nil {
		s.Log.Warnw("Task failed", "op", task.Op, "key", task.Key, "error", err)
	}
	return true
}
