package main

import (
	"bufio"
	"container/heap"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type minHeap []int

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ScoreTracker keeps the K highest scores seen, backed by a min-heap so
// the weakest retained score is always at the root
type ScoreTracker struct {
	limit  int
	scores minHeap
}

// NewScoreTracker creates a tracker retaining up to limit scores
func NewScoreTracker(limit int) *ScoreTracker {
	return &ScoreTracker{limit: limit}
}

// Record offers a score for admission. Below capacity every score is
// kept; at capacity the score must strictly beat the current minimum,
// so ties favor the incumbent.
func (t *ScoreTracker) Record(score int) {
	if len(t.scores) < t.limit {
		heap.Push(&t.scores, score)
		return
	}
	if t.limit > 0 && score > t.scores[0] {
		t.scores[0] = score
		heap.Fix(&t.scores, 0)
	}
}

// TopSorted returns the retained scores in descending order
func (t *ScoreTracker) TopSorted() []int {
	out := make([]int, len(t.scores))
	copy(out, t.scores)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Highest returns the best retained score, or 0 when empty
func (t *ScoreTracker) Highest() int {
	best := 0
	for _, s := range t.scores {
		if s > best {
			best = s
		}
	}
	return best
}

// LoadFrom replays scores through the admission rule in order
func (t *ScoreTracker) LoadFrom(scores []int) {
	for _, s := range scores {
		t.Record(s)
	}
}

// Len returns the number of retained scores
func (t *ScoreTracker) Len() int {
	return len(t.scores)
}

// LoadScores reads the leaderboard file: one decimal integer per line.
// A missing file is an empty board. Parsing stops at the first
// malformed line, keeping whatever was read before it.
func LoadScores(path string) []int {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var scores []int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			break
		}
		scores = append(scores, n)
	}
	return scores
}

// SaveScores overwrites the leaderboard file with one score per line
func SaveScores(path string, scores []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, s := range scores {
		fmt.Fprintln(w, s)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ScoreManager tracks the current run's score, streak and multiplier on
// top of the persistent top-K board
type ScoreManager struct {
	mu         sync.Mutex
	path       string
	tracker    *ScoreTracker
	current    int
	streak     int
	maxStreak  int
	multiplier int
}

// NewScoreManager creates a manager persisting to path, loading any
// existing board
func NewScoreManager(path string) *ScoreManager {
	m := &ScoreManager{
		path:       path,
		tracker:    NewScoreTracker(TopKScores),
		multiplier: 1,
	}
	m.tracker.LoadFrom(LoadScores(path))
	return m
}

// AddScore adds points to the current run, scaled by the active
// multiplier, and extends the streak
func (m *ScoreManager) AddScore(points int) {
	m.mu.Lock()
	m.current += points * m.multiplier
	m.streak++
	if m.streak > m.maxStreak {
		m.maxStreak = m.streak
	}
	m.mu.Unlock()
}

// ResetStreak zeroes the scoring streak (taking a hit)
func (m *ScoreManager) ResetStreak() {
	m.mu.Lock()
	m.streak = 0
	m.mu.Unlock()
}

// SetMultiplier sets the score multiplier (1 = normal)
func (m *ScoreManager) SetMultiplier(mult int) {
	m.mu.Lock()
	m.multiplier = mult
	m.mu.Unlock()
}

// Current returns the current run's score
func (m *ScoreManager) Current() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// High returns the best score on the board
func (m *ScoreManager) High() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Highest()
}

// Streak returns the current scoring streak
func (m *ScoreManager) Streak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.streak
}

// MaxStreak returns the longest streak of the run
func (m *ScoreManager) MaxStreak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxStreak
}

// TopScores returns the board in descending order
func (m *ScoreManager) TopScores() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.TopSorted()
}

// ResetRun clears per-run state for a fresh run; the board is untouched
func (m *ScoreManager) ResetRun() {
	m.mu.Lock()
	m.current = 0
	m.streak = 0
	m.maxStreak = 0
	m.multiplier = 1
	m.mu.Unlock()
}

// CommitAsync records the current run on the board and submits a save
// of a by-value snapshot, so later board changes cannot leak into the
// pending write
func (m *ScoreManager) CommitAsync(jq *JobQueue) {
	m.mu.Lock()
	m.tracker.Record(m.current)
	snapshot := m.tracker.TopSorted()
	path := m.path
	m.mu.Unlock()

	jq.Submit(func() {
		if err := SaveScores(path, snapshot); err != nil {
			log.Printf("scores: save %s: %v", path, err)
		}
	})
}

// CommitSync records and saves immediately; used at shutdown
func (m *ScoreManager) CommitSync() {
	m.mu.Lock()
	m.tracker.Record(m.current)
	snapshot := m.tracker.TopSorted()
	path := m.path
	m.mu.Unlock()

	if err := SaveScores(path, snapshot); err != nil {
		log.Printf("scores: save %s: %v", path, err)
	}
}
