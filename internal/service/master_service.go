package service

import (
	"context"
	"fmt"
	"strings"

	"hantoo_go/internal/domain"
	"hantoo_go/internal/infra/storage"
	"hantoo_go/internal/master"
)

// MasterService exposes the inbound master-file operations behind the
// uniform response envelope. Failures are data: every call returns an
// envelope, never a raw error. The service holds no table state of its
// own; the snapshot store is the single source of truth.
type MasterService struct {
	store   *master.SnapshotStore
	updater *master.Updater
	engine  *master.Engine
	history *storage.Storage // optional, may be nil
}

// NewMasterService wires the service from its explicitly constructed
// parts. There is no lazy initialization; everything is ready before the
// first request.
func NewMasterService(store *master.SnapshotStore, updater *master.Updater, engine *master.Engine, history *storage.Storage) *MasterService {
	return &MasterService{store: store, updater: updater, engine: engine, history: history}
}

// SearchSymbols searches instruments by code or name substring.
func (s *MasterService) SearchSymbols(query, exchange string, limit int) domain.Response {
	if strings.TrimSpace(query) == "" {
		return domain.MakeResponse(domain.StatusError, domain.ErrEmptyQuery.Error(), nil, nil)
	}
	if limit <= 0 {
		limit = master.DefaultSearchLimit
	}

	result := s.engine.Search(query, exchange, limit)
	meta := map[string]any{"query": query, "exchange": exchange, "limit": limit}

	if len(result.Items) == 0 {
		return domain.MakeResponse(domain.StatusNoResults, fmt.Sprintf("no results for %q", query), nil, meta)
	}

	results := make([]any, len(result.Items))
	for i, item := range result.Items {
		results[i] = item
	}
	return domain.MakeResponse(domain.StatusSuccess, fmt.Sprintf("found %d symbols for %q", len(result.Items), query), results, meta)
}

// GetSymbol looks up one instrument by exact short code.
func (s *MasterService) GetSymbol(code string) domain.Response {
	if strings.TrimSpace(code) == "" {
		return domain.MakeResponse(domain.StatusError, domain.ErrEmptyCode.Error(), nil, nil)
	}

	detail := s.engine.GetByCode(code)
	if detail == nil {
		return domain.MakeResponse(domain.StatusNoResults, fmt.Sprintf("symbol %q not found", code), nil, map[string]any{"code": code})
	}
	return domain.MakeResponse(domain.StatusSuccess, fmt.Sprintf("symbol %q: %s", detail.Code, detail.Name), []any{*detail}, map[string]any{"code": code})
}

// GetMasterStatus reports per-exchange snapshot state and staleness.
func (s *MasterService) GetMasterStatus() domain.Response {
	status := s.store.Status()

	results := make([]any, 0, len(domain.ExchangeOrder))
	for _, id := range domain.ExchangeOrder {
		st := status.Exchanges[id]
		results = append(results, map[string]any{
			"id":           id,
			"count":        st.Count,
			"last_updated": st.LastUpdated,
			"file_exists":  st.FileExists,
		})
	}

	meta := map[string]any{
		"needs_update":      status.NeedsUpdate,
		"update_check_date": status.UpdateCheckDate,
	}
	if s.history != nil {
		if runs, err := s.history.RecentRuns(10); err == nil && len(runs) > 0 {
			meta["recent_runs"] = runs
		}
	}
	return domain.MakeResponse(domain.StatusSuccess, "master status", results, meta)
}

// UpdateMaster refreshes master snapshots for the requested exchanges,
// or all of them when none are named.
func (s *MasterService) UpdateMaster(ctx context.Context, exchanges []string) domain.Response {
	result := s.updater.Update(ctx, exchanges)
	if result.Updated == nil {
		result.Updated = []string{}
	}

	results := make([]any, 0, len(result.Updated))
	for _, id := range result.Updated {
		results = append(results, map[string]any{"exchange": id, "count": result.Counts[id]})
	}

	meta := map[string]any{"updated": result.Updated}
	switch {
	case result.Success:
		return domain.MakeResponse(domain.StatusSuccess,
			"master update complete: "+strings.Join(result.Updated, ", "), results, meta)
	case len(result.Updated) > 0:
		meta["errors"] = result.Errors
		return domain.MakeResponse(domain.StatusPartialSuccess,
			fmt.Sprintf("master update partially failed: %v", result.Errors), results, meta)
	default:
		meta["errors"] = result.Errors
		return domain.MakeResponse(domain.StatusError,
			fmt.Sprintf("master update failed: %v", result.Errors), results, meta)
	}
}

// GetExchanges lists the supported exchanges, domestic first.
func (s *MasterService) GetExchanges() domain.Response {
	domestic, overseas := 0, 0
	results := make([]any, 0, len(domain.ExchangeOrder))
	for _, id := range domain.ExchangeOrder {
		ex := domain.Exchanges[id]
		if ex.Class == domain.MarketDomestic {
			domestic++
		} else {
			overseas++
		}
		results = append(results, ex)
	}

	meta := map[string]any{"domestic_count": domestic, "overseas_count": overseas}
	return domain.MakeResponse(domain.StatusSuccess, fmt.Sprintf("%d exchanges supported", len(results)), results, meta)
}
