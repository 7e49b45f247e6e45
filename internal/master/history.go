package master

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hantoo_go/internal/domain"
)

// Probe checks collaborator-owned history files for a code's locally held
// data range. Candidate directories are tried in order, first hit wins.
// The probe is read-only and never caches: availability is recomputed per
// query so a freshly written history file shows up immediately.
type Probe struct {
	dirs []string
}

// NewProbe builds a probe over the daily and overseas history locations.
func NewProbe(baseDir string) *Probe {
	return &Probe{dirs: []string{
		filepath.Join(baseDir, ".data", "daily"),
		filepath.Join(baseDir, ".data", "overseas"),
	}}
}

// Range returns the data range for a code, or nil when no candidate
// location holds a parseable history file. Read and parse failures are
// swallowed; the next candidate is tried.
func (p *Probe) Range(code string) *domain.DataRange {
	for _, dir := range p.dirs {
		if dr := readRange(filepath.Join(dir, code+".csv")); dr != nil {
			return dr
		}
	}
	return nil
}

func readRange(path string) *domain.DataRange {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	dateIdx, closeIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "date":
			dateIdx = i
		case "close":
			closeIdx = i
		}
	}
	if dateIdx < 0 {
		return nil
	}

	var minDate, maxDate time.Time
	var lastClose *decimal.Decimal
	days := 0
	for _, row := range rows[1:] {
		days++
		if dateIdx < len(row) {
			if d, ok := parseHistoryDate(row[dateIdx]); ok {
				if minDate.IsZero() || d.Before(minDate) {
					minDate = d
				}
				if maxDate.IsZero() || d.After(maxDate) {
					maxDate = d
				}
			}
		}
		if closeIdx >= 0 && closeIdx < len(row) {
			if v, err := decimal.NewFromString(strings.TrimSpace(row[closeIdx])); err == nil {
				lastClose = &v
			}
		}
	}
	if minDate.IsZero() {
		return nil
	}

	return &domain.DataRange{
		Start:     minDate.Format("2006-01-02"),
		End:       maxDate.Format("2006-01-02"),
		Days:      days,
		LastClose: lastClose,
	}
}

func parseHistoryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
