package master

import (
	"os"
	"path/filepath"
	"testing"
)

func writeHistory(t *testing.T, base, sub, code, content string) {
	t.Helper()
	dir := filepath.Join(base, ".data", sub)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, code+".csv"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestProbeRange(t *testing.T) {
	base := t.TempDir()
	probe := NewProbe(base)

	t.Run("no history file", func(t *testing.T) {
		if dr := probe.Range("005930"); dr != nil {
			t.Errorf("expected nil range, got %+v", dr)
		}
	})

	t.Run("daily file summarized", func(t *testing.T) {
		writeHistory(t, base, "daily", "005930",
			"date,open,close\n2024-03-05,100,101\n2024-01-02,90,95\n2024-02-15,98,99\n")

		dr := probe.Range("005930")
		if dr == nil {
			t.Fatal("expected a data range")
		}
		if dr.Start != "2024-01-02" || dr.End != "2024-03-05" {
			t.Errorf("range = %s..%s, want 2024-01-02..2024-03-05", dr.Start, dr.End)
		}
		if dr.Days != 3 {
			t.Errorf("Days = %d, want 3", dr.Days)
		}
		if dr.LastClose == nil || dr.LastClose.String() != "99" {
			t.Errorf("LastClose = %v, want 99", dr.LastClose)
		}
	})

	t.Run("second directory is the fallback", func(t *testing.T) {
		writeHistory(t, base, "overseas", "AAPL",
			"date,close\n20240102,185.5\n20240103,186.2\n")

		dr := probe.Range("AAPL")
		if dr == nil {
			t.Fatal("expected a data range from the overseas directory")
		}
		if dr.Start != "2024-01-02" || dr.End != "2024-01-03" || dr.Days != 2 {
			t.Errorf("unexpected range %+v", dr)
		}
	})

	t.Run("broken candidate is skipped", func(t *testing.T) {
		// daily copy has no date column; the overseas copy must win
		writeHistory(t, base, "daily", "TSLA", "open,close\n1,2\n")
		writeHistory(t, base, "overseas", "TSLA", "date,close\n2023-06-01,250\n")

		dr := probe.Range("TSLA")
		if dr == nil || dr.Start != "2023-06-01" {
			t.Fatalf("expected fallback range, got %+v", dr)
		}
	})

	t.Run("header only means no data", func(t *testing.T) {
		writeHistory(t, base, "daily", "EMPTY", "date,close\n")
		if dr := probe.Range("EMPTY"); dr != nil {
			t.Errorf("expected nil range, got %+v", dr)
		}
	})
}
