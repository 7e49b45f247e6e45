package master

import (
	"strings"

	"hantoo_go/internal/domain"
)

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 20

// Engine serves substring search and exact-code lookup. It reads only
// from the snapshot store and enriches hits via the history probe.
type Engine struct {
	store *SnapshotStore
	probe *Probe
}

// NewEngine creates a search engine over a store and probe.
func NewEngine(store *SnapshotStore, probe *Probe) *Engine {
	return &Engine{store: store, probe: probe}
}

// Search matches the query case-insensitively as a substring of short
// code, Korean name or English name. When exchange names a known id only
// that exchange is searched; otherwise all exchanges are walked in
// registry order, and accumulation stops at limit even mid-exchange, so
// registry order is the tie-break at the cutoff.
func (e *Engine) Search(query, exchange string, limit int) domain.SearchResult {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	ids := domain.ExchangeOrder
	if exchange != "" {
		if domain.KnownExchange(exchange) {
			ids = []string{exchange}
		} else {
			ids = nil
		}
	}

	items := make([]domain.SearchItem, 0, limit)
	for _, id := range ids {
		for _, rec := range e.store.Load(id) {
			if !matchesQuery(rec, q) {
				continue
			}
			dr := e.probe.Range(rec.ShortCode)
			items = append(items, domain.SearchItem{
				Code:         rec.ShortCode,
				Name:         rec.KoreanName,
				Exchange:     id,
				ExchangeName: domain.ExchangeName(id),
				Sector:       rec.Sector,
				HasData:      dr != nil,
				DataRange:    dr,
			})
			if len(items) >= limit {
				break
			}
		}
		if len(items) >= limit {
			break
		}
	}

	return domain.SearchResult{
		Query:    query,
		Exchange: exchange,
		Total:    len(items),
		Items:    items,
	}
}

func matchesQuery(rec domain.Instrument, q string) bool {
	if strings.Contains(strings.ToLower(rec.ShortCode), q) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.KoreanName), q) {
		return true
	}
	return rec.EnglishName != "" && strings.Contains(strings.ToLower(rec.EnglishName), q)
}

// GetByCode looks up one symbol by exact short code, case-insensitively.
// The first exchange in registry order containing the code wins; no
// cross-exchange duplicate resolution beyond that.
func (e *Engine) GetByCode(code string) *domain.SymbolDetail {
	c := strings.ToUpper(strings.TrimSpace(code))

	for _, id := range domain.ExchangeOrder {
		for _, rec := range e.store.Load(id) {
			if strings.ToUpper(rec.ShortCode) != c {
				continue
			}
			dr := e.probe.Range(rec.ShortCode)
			return &domain.SymbolDetail{
				Code:         rec.ShortCode,
				Name:         rec.KoreanName,
				EnglishName:  rec.EnglishName,
				Exchange:     id,
				ExchangeName: domain.ExchangeName(id),
				Sector:       rec.Sector,
				HasData:      dr != nil,
				DataRange:    dr,
			}
		}
	}
	return nil
}
