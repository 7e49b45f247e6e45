package master

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hantoo_go/internal/domain"
)

const snapshotDirName = ".master"

var snapshotHeader = []string{"short_code", "standard_code", "korean_name", "english_name", "exchange", "sector"}

// SnapshotStore owns the per-exchange master snapshots: one CSV file per
// exchange under <base>/.master plus an in-memory cache keyed by exchange
// id. Ingestion is the only writer; tables are swapped whole under the
// lock so concurrent readers never observe a half-written table.
type SnapshotStore struct {
	dir   string
	mu    sync.RWMutex
	cache map[string][]domain.Instrument
}

// NewSnapshotStore creates the store and its directory.
func NewSnapshotStore(baseDir string) (*SnapshotStore, error) {
	dir := filepath.Join(baseDir, snapshotDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create master directory: %w", err)
	}
	return &SnapshotStore{
		dir:   dir,
		cache: make(map[string][]domain.Instrument),
	}, nil
}

// Dir returns the snapshot directory.
func (s *SnapshotStore) Dir() string {
	return s.dir
}

func (s *SnapshotStore) csvPath(exchange string) string {
	return filepath.Join(s.dir, exchange+".csv")
}

// Save overwrites one exchange's snapshot file wholesale and swaps the
// cached table. There is no incremental merge.
func (s *SnapshotStore) Save(exchange string, records []domain.Instrument) error {
	f, err := os.Create(s.csvPath(exchange))
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(snapshotHeader)
	for _, r := range records {
		_ = w.Write([]string{r.ShortCode, r.StandardCode, r.KoreanName, r.EnglishName, r.Exchange, r.Sector})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	s.mu.Lock()
	s.cache[exchange] = records
	s.mu.Unlock()
	return nil
}

// Load returns the table for one exchange, reading the snapshot file on
// first use. A missing snapshot yields an empty table and is not cached,
// so a file written by a later ingestion is still picked up.
func (s *SnapshotStore) Load(exchange string) []domain.Instrument {
	s.mu.RLock()
	if records, ok := s.cache[exchange]; ok {
		s.mu.RUnlock()
		return records
	}
	s.mu.RUnlock()

	records, err := s.readSnapshot(exchange)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	s.cache[exchange] = records
	s.mu.Unlock()
	return records
}

func (s *SnapshotStore) readSnapshot(exchange string) ([]domain.Instrument, error) {
	f, err := os.Open(s.csvPath(exchange))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]domain.Instrument, 0, 1024)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, domain.Instrument{
			ShortCode:    field(row, "short_code"),
			StandardCode: field(row, "standard_code"),
			KoreanName:   field(row, "korean_name"),
			EnglishName:  field(row, "english_name"),
			Exchange:     field(row, "exchange"),
			Sector:       field(row, "sector"),
		})
	}
	return records, nil
}

// Status reports per-exchange snapshot state plus the global staleness
// flag. A snapshot is stale once its modification date's calendar day is
// before today; a missing snapshot also flags an update.
func (s *SnapshotStore) Status() domain.MasterStatus {
	now := time.Now()
	y, m, d := now.Date()
	startOfToday := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	exchanges := make(map[string]domain.ExchangeStatus, len(domain.ExchangeOrder))
	needsUpdate := false

	for _, id := range domain.ExchangeOrder {
		var st domain.ExchangeStatus
		if fi, err := os.Stat(s.csvPath(id)); err == nil {
			mtime := fi.ModTime()
			st.FileExists = true
			st.LastUpdated = &mtime
			st.Count = len(s.Load(id))
			if mtime.Before(startOfToday) {
				needsUpdate = true
			}
		} else {
			needsUpdate = true
		}
		exchanges[id] = st
	}

	return domain.MasterStatus{
		Exchanges:       exchanges,
		NeedsUpdate:     needsUpdate,
		UpdateCheckDate: startOfToday.Format("2006-01-02"),
	}
}
