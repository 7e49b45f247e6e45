package master

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"hantoo_go/internal/domain"
	"hantoo_go/internal/infra/storage"
)

// DefaultFetchTimeout bounds one vendor download.
const DefaultFetchTimeout = 60 * time.Second

// Updater runs the master ingestion pipeline: fetch, unzip, decode,
// persist, one exchange at a time. Exchanges are processed sequentially
// to keep upstream request concurrency at one and error attribution
// simple; a failure on one exchange never blocks the others.
type Updater struct {
	store   *SnapshotStore
	sources map[string]Source
	client  *http.Client
	history *storage.Storage // optional audit log, may be nil
}

// NewUpdater creates an ingestion pipeline. Passing nil sources or client
// selects the compiled-in vendor bindings and a 60s-timeout client.
func NewUpdater(store *SnapshotStore, sources map[string]Source, client *http.Client, history *storage.Storage) *Updater {
	if sources == nil {
		sources = DefaultSources
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &Updater{store: store, sources: sources, client: client, history: history}
}

// Update refreshes the requested exchanges, defaulting to every exchange
// in registry order. Each exchange is attempted independently; failures
// are collected per id and never abort the run. Success means zero
// failures among the requested exchanges.
func (u *Updater) Update(ctx context.Context, exchanges []string) domain.UpdateResult {
	if len(exchanges) == 0 {
		exchanges = domain.ExchangeOrder
	}

	result := domain.UpdateResult{
		Counts: make(map[string]int),
		Errors: make(map[string]string),
	}

	for _, id := range exchanges {
		src, ok := u.sources[id]
		if !ok {
			result.Errors[id] = fmt.Sprintf("%v: %s", domain.ErrUnknownExchange, id)
			continue
		}

		started := time.Now()
		count, err := u.updateOne(ctx, id, src)
		if err != nil {
			slog.Error("Master update failed", slog.String("exchange", id), slog.Any("error", err))
			result.Errors[id] = err.Error()
		} else {
			slog.Info("Master updated", slog.String("exchange", id), slog.Int("symbols", count))
			result.Updated = append(result.Updated, id)
			result.Counts[id] = count
		}
		u.recordRun(id, count, time.Since(started), err)
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Errors = nil
	}
	return result
}

func (u *Updater) updateOne(ctx context.Context, exchange string, src Source) (int, error) {
	tmpZip := filepath.Join(u.store.Dir(), exchange+"_temp.zip")
	defer os.Remove(tmpZip)

	if err := u.download(ctx, exchange, src.URL, tmpZip); err != nil {
		return 0, err
	}

	raw, err := extractSoleFile(tmpZip)
	if err != nil {
		return 0, err
	}

	content, err := DecodeMasterText(raw)
	if err != nil {
		return 0, err
	}

	records, err := src.Decoder.Decode(content, exchange)
	if err != nil {
		return 0, err
	}

	if err := u.store.Save(exchange, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (u *Updater) download(ctx context.Context, exchange, url, dest string) error {
	slog.Info("Downloading master", slog.String("exchange", exchange), slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.NewFatalFetchError(exchange, "request", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return domain.NewFetchError(exchange, "get", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewFatalFetchError(exchange, "status", fmt.Errorf("bad status: %s", resp.Status))
	}

	f, err := os.Create(dest)
	if err != nil {
		return domain.NewFatalFetchError(exchange, "create temp", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return domain.NewFetchError(exchange, "read body", err)
	}
	return f.Close()
}

// extractSoleFile reads the single file a vendor archive contains.
func extractSoleFile(zipPath string) ([]byte, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &domain.ParseError{Stage: "unzip", Err: err}
	}
	defer r.Close()

	if len(r.File) == 0 {
		return nil, &domain.ParseError{Stage: "unzip", Err: errors.New("archive is empty")}
	}

	rc, err := r.File[0].Open()
	if err != nil {
		return nil, &domain.ParseError{Stage: "unzip", Err: err}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, &domain.ParseError{Stage: "unzip", Err: err}
	}
	return raw, nil
}

func (u *Updater) recordRun(exchange string, count int, elapsed time.Duration, runErr error) {
	if u.history == nil {
		return
	}
	run := &storage.IngestRun{
		Exchange:   exchange,
		Records:    count,
		DurationMS: elapsed.Milliseconds(),
		RanAt:      time.Now(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := u.history.RecordRun(run); err != nil {
		slog.Warn("Failed to record ingest run", slog.String("exchange", exchange), slog.Any("error", err))
	}
}
