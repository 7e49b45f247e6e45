package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return s
}

func TestRecordAndRecentRuns(t *testing.T) {
	s := setupTestDB(t)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	runs := []*IngestRun{
		{Exchange: "kospi", Records: 2500, DurationMS: 1200, RanAt: base},
		{Exchange: "kosdaq", Records: 0, DurationMS: 300, Error: "bad status: 502", RanAt: base.Add(time.Second)},
		{Exchange: "nasdaq", Records: 4200, DurationMS: 2100, RanAt: base.Add(2 * time.Second)},
	}
	for _, run := range runs {
		if err := s.RecordRun(run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	recent, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d runs, want 2", len(recent))
	}
	if recent[0].Exchange != "nasdaq" || recent[1].Exchange != "kosdaq" {
		t.Errorf("unexpected order: %s, %s", recent[0].Exchange, recent[1].Exchange)
	}
	if recent[1].Error == "" {
		t.Error("failed run should keep its error text")
	}
}

func TestLastRun(t *testing.T) {
	s := setupTestDB(t)

	if run, err := s.LastRun("kospi"); err != nil || run != nil {
		t.Fatalf("expected no run yet, got %+v, err %v", run, err)
	}

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	s.RecordRun(&IngestRun{Exchange: "kospi", Records: 100, RanAt: base})
	s.RecordRun(&IngestRun{Exchange: "kospi", Records: 101, RanAt: base.Add(time.Hour)})
	s.RecordRun(&IngestRun{Exchange: "konex", Records: 50, RanAt: base.Add(2 * time.Hour)})

	run, err := s.LastRun("kospi")
	if err != nil {
		t.Fatalf("LastRun failed: %v", err)
	}
	if run == nil || run.Records != 101 {
		t.Errorf("got %+v, want the 101-record run", run)
	}
}
