package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/farmstead/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to the Job interface
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool. A pool with a single worker runs jobs one at
// a time in enqueue order, which makes it a single writer for whatever state
// its jobs touch.
type Pool struct {
	workers   int
	jobQueue  chan Job
	wg        sync.WaitGroup
	quit      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker()
		}
	})
}

// worker is the worker loop
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(context.Background(), job)
		case <-p.quit:
			return
		}
	}
}

// run processes one job; a failing or panicking job never takes the worker down
func (p *Pool) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", LogMsgWorkerJobPanicked, r)
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()
	if err = job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
	}
	return err
}

// Enqueue adds a job to the queue, blocking while the queue is full.
// Returns ErrPoolStopped if the pool is shutting down.
func (p *Pool) Enqueue(job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	}
}

// TryEnqueue adds a job without blocking. It reports false when the queue is
// full or the pool stopped.
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Job handoff states for Do
const (
	jobPending int32 = iota
	jobStarted
	jobAbandoned
)

// Do enqueues fn and waits for it to finish, returning its error.
// fn runs with ctx so request-scoped values reach the job. If ctx ends while
// fn is still queued, fn never runs and Do returns ctx.Err(). Once fn has
// started Do waits for it and returns its result, so a nil error always means
// the mutation was applied and a non-nil one came from fn itself.
// Do must not be called from inside a job running on the same single-worker
// pool.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var state atomic.Int32
	done := make(chan error, 1)
	job := JobFunc(func(context.Context) error {
		if !state.CompareAndSwap(jobPending, jobStarted) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			done <- err
			return nil
		}
		done <- p.run(ctx, JobFunc(fn))
		return nil
	})

	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.jobQueue <- job:
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if state.CompareAndSwap(jobPending, jobAbandoned) {
			return ctx.Err()
		}
		return <-done
	}
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
