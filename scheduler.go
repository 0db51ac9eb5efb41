package main

import (
	"container/heap"
	"sync"
)

// scheduledAction is a deferred callback keyed by the tick it fires on
type scheduledAction struct {
	tick   uint64
	action func()
}

type actionHeap []scheduledAction

func (h actionHeap) Len() int            { return len(h) }
func (h actionHeap) Less(i, j int) bool  { return h[i].tick < h[j].tick }
func (h actionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *actionHeap) Push(x interface{}) { *h = append(*h, x.(scheduledAction)) }
func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler runs deferred actions on the tick they fall due. Actions
// scheduled for a tick at or before the current one fire on the next
// Process call, earliest tick first.
type Scheduler struct {
	mu sync.Mutex
	pq actionHeap
}

// NewScheduler creates an empty Scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ScheduleAt registers action to fire at the given absolute tick
func (s *Scheduler) ScheduleAt(tick uint64, action func()) {
	s.mu.Lock()
	heap.Push(&s.pq, scheduledAction{tick: tick, action: action})
	s.mu.Unlock()
}

// ScheduleAfter registers action to fire delta ticks after now
func (s *Scheduler) ScheduleAfter(now, delta uint64, action func()) {
	s.ScheduleAt(now+delta, action)
}

// Process fires every action due at or before currentTick. Due actions
// are drained under the lock, then invoked without it, so an action may
// call ScheduleAt to reschedule itself (actions it schedules for the
// current tick or earlier run on the next Process).
func (s *Scheduler) Process(currentTick uint64) {
	s.mu.Lock()
	var due []func()
	for len(s.pq) > 0 && s.pq[0].tick <= currentTick {
		sa := heap.Pop(&s.pq).(scheduledAction)
		due = append(due, sa.action)
	}
	s.mu.Unlock()

	for _, action := range due {
		action()
	}
}

// Pending returns the number of actions not yet fired
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pq)
}

// Clear drops all pending actions
func (s *Scheduler) Clear() {
	s.mu.Lock()
	s.pq = s.pq[:0]
	s.mu.Unlock()
}
