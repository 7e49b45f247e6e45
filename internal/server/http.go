package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"hantoo_go/internal/domain"
	"hantoo_go/internal/service"
)

// Handler serves the master-file operations as JSON over HTTP. It is a
// thin shell over the service: every response is the envelope with
// HTTP 200, including failures.
type Handler struct {
	svc *service.MasterService
}

// NewHandler creates the HTTP handler.
func NewHandler(svc *service.MasterService) *Handler {
	return &Handler{svc: svc}
}

// Routes builds the request mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/symbols/search", h.searchSymbols)
	mux.HandleFunc("GET /api/symbols/{code}", h.getSymbol)
	mux.HandleFunc("GET /api/master/status", h.masterStatus)
	mux.HandleFunc("POST /api/master/update", h.updateMaster)
	mux.HandleFunc("GET /api/exchanges", h.exchanges)
	return mux
}

func (h *Handler) searchSymbols(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	writeJSON(w, h.svc.SearchSymbols(q.Get("q"), q.Get("exchange"), limit))
}

func (h *Handler) getSymbol(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetSymbol(r.PathValue("code")))
}

func (h *Handler) masterStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetMasterStatus())
}

func (h *Handler) updateMaster(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Exchanges []string `json:"exchanges"`
	}
	// empty or malformed body means "all exchanges"
	_ = json.NewDecoder(r.Body).Decode(&body)
	writeJSON(w, h.svc.UpdateMaster(r.Context(), body.Exchanges))
}

func (h *Handler) exchanges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetExchanges())
}

func writeJSON(w http.ResponseWriter, resp domain.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
