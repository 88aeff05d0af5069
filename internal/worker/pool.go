package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of background work such as an email delivery.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pool runs submitted tasks on a fixed number of workers. Each task is
// bounded by the pool timeout; failures are logged and never propagated.
type Pool struct {
	workers int
	timeout time.Duration
	logger  *slog.Logger

	jobs    chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
	base    context.Context
}

// NewPool constructs task pool with bounded queue.
func NewPool(workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Pool{
		workers: workers,
		timeout: timeout,
		logger:  logger,
		jobs:    make(chan Task, queueSize),
	}
}

// Start launches workers. Tasks keep running after ctx is cancelled so that
// Stop can drain the queue.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	p.base = context.WithoutCancel(ctx)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Submit enqueues task without blocking. It reports false when the queue is
// full or the pool is stopped.
func (p *Pool) Submit(task Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		p.logger.Warn("task rejected, pool stopped", slog.String("task", task.Name))
		return false
	}

	select {
	case p.jobs <- task:
		return true
	default:
		p.logger.Warn("task dropped, queue full", slog.String("task", task.Name))
		return false
	}
}

// Stop closes the queue and waits for queued tasks to finish. A pool that
// was never started runs the queued tasks on the calling goroutine.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	started := p.started
	if !started {
		p.base = context.Background()
	}
	p.mu.Unlock()

	if !started {
		if pending := len(p.jobs); pending > 0 {
			p.logger.Warn("pool stopped before start, running queued tasks inline", slog.Int("pending", pending))
		}
		for task := range p.jobs {
			p.run(task)
		}
		return
	}

	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.jobs {
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	ctx := p.base
	cancel := func() {}
	if p.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
	}
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", slog.String("task", task.Name), slog.Any("panic", r))
		}
	}()

	started := time.Now()
	if err := task.Run(ctx); err != nil {
		p.logger.Error("task failed",
			slog.String("task", task.Name),
			slog.Duration("elapsed", time.Since(started)),
			slog.String("error", err.Error()),
		)
		return
	}
	p.logger.Debug("task completed", slog.String("task", task.Name), slog.Duration("elapsed", time.Since(started)))
}
