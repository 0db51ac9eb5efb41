package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScoreTrackerKeepsTopK(t *testing.T) {
	tr := NewScoreTracker(TopKScores)
	for _, s := range []int{300, 50, 900, 120, 700, 10, 450, 820, 60, 210, 990, 330, 75, 640, 505} {
		tr.Record(s)
	}

	top := tr.TopSorted()
	if len(top) != TopKScores {
		t.Fatalf("expected %d scores, got %d", TopKScores, len(top))
	}
	want := []int{990, 900, 820, 700, 640, 505, 450, 330, 300, 210}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("TopSorted = %v, want %v", top, want)
		}
	}
	if tr.Highest() != 990 {
		t.Errorf("Highest = %d, want 990", tr.Highest())
	}
}

func TestScoreTrackerTieAtCapacityKeepsIncumbent(t *testing.T) {
	tr := NewScoreTracker(3)
	tr.Record(10)
	tr.Record(20)
	tr.Record(30)

	// Equal to the minimum: incumbent stays
	tr.Record(10)
	top := tr.TopSorted()
	if len(top) != 3 || top[2] != 10 {
		t.Errorf("tie should not evict, got %v", top)
	}

	// Strictly greater evicts the minimum
	tr.Record(11)
	top = tr.TopSorted()
	if top[2] != 11 {
		t.Errorf("expected minimum replaced by 11, got %v", top)
	}
}

func TestScoreTrackerHighestEmpty(t *testing.T) {
	tr := NewScoreTracker(TopKScores)
	if tr.Highest() != 0 {
		t.Errorf("empty tracker Highest = %d, want 0", tr.Highest())
	}
}

func TestScoresFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	want := []int{900, 450, 120, 30}

	if err := SaveScores(path, want); err != nil {
		t.Fatalf("SaveScores: %v", err)
	}
	got := LoadScores(path)
	if len(got) != len(want) {
		t.Fatalf("loaded %d scores, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LoadScores = %v, want %v", got, want)
		}
	}
}

func TestLoadScoresMissingFile(t *testing.T) {
	got := LoadScores(filepath.Join(t.TempDir(), "nope.dat"))
	if got != nil {
		t.Errorf("missing file should load as empty board, got %v", got)
	}
}

func TestLoadScoresMalformedLineHaltsParsing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	os.WriteFile(path, []byte("100\n90\nxx\n80\n"), 0o644)

	got := LoadScores(path)
	if len(got) != 2 || got[0] != 100 || got[1] != 90 {
		t.Errorf("expected parsing to halt at bad line keeping [100 90], got %v", got)
	}
}

func TestScoreManagerMultiplierAndStreak(t *testing.T) {
	m := NewScoreManager(filepath.Join(t.TempDir(), "scores.dat"))

	m.AddScore(10)
	m.AddScore(10)
	if m.Current() != 20 {
		t.Errorf("Current = %d, want 20", m.Current())
	}
	if m.Streak() != 2 {
		t.Errorf("Streak = %d, want 2", m.Streak())
	}

	m.SetMultiplier(2)
	m.AddScore(10)
	if m.Current() != 40 {
		t.Errorf("Current with x2 = %d, want 40", m.Current())
	}

	m.ResetStreak()
	if m.Streak() != 0 {
		t.Errorf("Streak after reset = %d, want 0", m.Streak())
	}
	if m.MaxStreak() != 3 {
		t.Errorf("MaxStreak = %d, want 3", m.MaxStreak())
	}

	m.ResetRun()
	if m.Current() != 0 || m.Streak() != 0 || m.MaxStreak() != 0 {
		t.Error("ResetRun should clear per-run state")
	}
}

func TestScoreManagerCommitAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.dat")
	m := NewScoreManager(path)
	jq := NewJobQueue()

	m.AddScore(250)
	m.CommitAsync(jq)
	jq.Shutdown() // drains the pending save

	got := LoadScores(path)
	if len(got) != 1 || got[0] != 250 {
		t.Errorf("expected saved board [250], got %v", got)
	}

	// A fresh manager sees the committed board
	m2 := NewScoreManager(path)
	if m2.High() != 250 {
		t.Errorf("reloaded High = %d, want 250", m2.High())
	}
}
