package main

import (
	"log"
	"sync"
)

// JobQueue runs submitted jobs one at a time on a background worker.
//
// Jobs run newest-first: every job here is a full-snapshot write of the
// leaderboard file, so the most recent submission holds the complete
// state and draining the backlog in any order converges on it. Shutdown
// drains every queued job before the worker exits.
type JobQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []func()
	stopped bool
	done    chan struct{}
}

// NewJobQueue creates a JobQueue and starts its worker goroutine
func NewJobQueue() *JobQueue {
	q := &JobQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.worker()
	return q
}

// Submit enqueues a job. Safe to call from the tick loop; never blocks
// on the job itself.
func (q *JobQueue) Submit(job func()) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.jobs = append(q.jobs, job)
	q.mu.Unlock()
	q.cond.Signal()
}

// Shutdown stops the queue after draining all pending jobs and waits
// for the worker to exit. Idempotent.
func (q *JobQueue) Shutdown() {
	q.mu.Lock()
	if !q.stopped {
		q.stopped = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()
	<-q.done
}

// Pending returns the number of jobs not yet run
func (q *JobQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

func (q *JobQueue) worker() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.jobs) == 0 && !q.stopped {
			q.cond.Wait()
		}
		if len(q.jobs) == 0 && q.stopped {
			q.mu.Unlock()
			return
		}
		n := len(q.jobs) - 1
		job := q.jobs[n]
		q.jobs = q.jobs[:n]
		q.mu.Unlock()

		q.run(job)
	}
}

// run executes a job outside the lock; a panicking job is logged and
// never kills the worker
func (q *JobQueue) run(job func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("job queue: job panicked: %v", r)
		}
	}()
	job()
}
