package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Instrument is one tradable instrument row from an exchange master file.
// ShortCode is the exchange-local trading code and the primary lookup key;
// it is unique within one exchange but not across exchanges.
type Instrument struct {
	ShortCode    string `json:"short_code"`
	StandardCode string `json:"standard_code"`
	KoreanName   string `json:"korean_name"`
	EnglishName  string `json:"english_name,omitempty"` // overseas only
	Exchange     string `json:"exchange"`
	Sector       string `json:"sector,omitempty"` // reserved, no master populates it yet
}

// DataRange summarizes the locally held history for one code.
type DataRange struct {
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Days      int              `json:"days"`
	LastClose *decimal.Decimal `json:"last_close,omitempty"`
}

// ExchangeStatus is the snapshot state of one exchange's master file.
type ExchangeStatus struct {
	Count       int        `json:"count"`
	LastUpdated *time.Time `json:"last_updated"`
	FileExists  bool       `json:"file_exists"`
}

// MasterStatus aggregates snapshot state across all exchanges.
// NeedsUpdate is true when any snapshot's modification date is before today.
type MasterStatus struct {
	Exchanges       map[string]ExchangeStatus `json:"exchanges"`
	NeedsUpdate     bool                      `json:"needs_update"`
	UpdateCheckDate string                    `json:"update_check_date"`
}

// UpdateResult reports one master update run. Per-exchange failures are
// collected in Errors; Success means zero failures among requested exchanges.
type UpdateResult struct {
	Success bool              `json:"success"`
	Updated []string          `json:"updated"`
	Counts  map[string]int    `json:"counts"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SearchItem is one search hit, enriched with history availability.
type SearchItem struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Exchange     string     `json:"exchange"`
	ExchangeName string     `json:"exchange_name"`
	Sector       string     `json:"sector,omitempty"`
	HasData      bool       `json:"has_data"`
	DataRange    *DataRange `json:"data_range,omitempty"`
}

// SearchResult is the outcome of one symbol search.
type SearchResult struct {
	Query    string       `json:"query"`
	Exchange string       `json:"exchange,omitempty"`
	Total    int          `json:"total"`
	Items    []SearchItem `json:"items"`
}

// SymbolDetail is the full record for an exact-code lookup.
// ListingDate and MarketCapScale are carried in the schema but no master
// file currently provides them.
type SymbolDetail struct {
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	EnglishName    string     `json:"english_name,omitempty"`
	Exchange       string     `json:"exchange"`
	ExchangeName   string     `json:"exchange_name"`
	Sector         string     `json:"sector,omitempty"`
	ListingDate    string     `json:"listing_date,omitempty"`
	MarketCapScale string     `json:"market_cap_scale,omitempty"`
	HasData        bool       `json:"has_data"`
	DataRange      *DataRange `json:"data_range,omitempty"`
}
