package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IngestRun is one audit row for a master update attempt on one exchange.
type IngestRun struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Exchange   string    `gorm:"index" json:"exchange"`
	Records    int       `json:"records"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	RanAt      time.Time `gorm:"index" json:"ran_at"`
}

// Storage keeps the ingest run history in a local SQLite database. The
// master snapshots themselves live as CSV files; only the audit trail
// goes through SQLite.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the history database at dbPath.
func NewStorage(dbPath string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&IngestRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// RecordRun appends one audit row.
func (s *Storage) RecordRun(run *IngestRun) error {
	return s.db.Create(run).Error
}

// RecentRuns returns the latest runs across all exchanges, newest first.
func (s *Storage) RecentRuns(limit int) ([]IngestRun, error) {
	var runs []IngestRun
	err := s.db.Order("ran_at desc, id desc").Limit(limit).Find(&runs).Error
	return runs, err
}

// LastRun returns the most recent run for one exchange, or nil when the
// exchange has never been attempted.
func (s *Storage) LastRun(exchange string) (*IngestRun, error) {
	var runs []IngestRun
	err := s.db.Where("exchange = ?", exchange).Order("ran_at desc, id desc").Limit(1).Find(&runs).Error
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}
