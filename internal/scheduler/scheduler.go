package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/worker"
)

// Scheduler enqueues jobs into a worker pool at fixed real-time intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	paused     atomic.Bool
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval.
// A tick is dropped rather than queued when the pool is backed up, so a slow
// job never builds an unbounded backlog.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if s.paused.Load() {
					continue
				}
				if !s.workerPool.TryEnqueue(job) {
					logger.Warn(LogMsgScheduledJobDropped, "interval", interval)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Pause stops enqueueing scheduled jobs until Resume is called
func (s *Scheduler) Pause() {
	s.paused.Store(true)
}

// Resume re-enables scheduled jobs
func (s *Scheduler) Resume() {
	s.paused.Store(false)
}

// Paused reports whether the scheduler is paused
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// LogMsgScheduledJobDropped is logged when the pool queue is full at tick time
const LogMsgScheduledJobDropped = "Scheduled job dropped, worker queue full"
