package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hantoo_go/internal/domain"
	"hantoo_go/internal/master"
	"hantoo_go/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	base := t.TempDir()
	store, err := master.NewSnapshotStore(base)
	if err != nil {
		t.Fatalf("NewSnapshotStore failed: %v", err)
	}
	if err := store.Save("nasdaq", []domain.Instrument{
		{ShortCode: "AAPL", StandardCode: "AAPL", KoreanName: "애플", EnglishName: "Apple Inc", Exchange: "nasdaq"},
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	updater := master.NewUpdater(store, map[string]master.Source{}, nil, nil)
	engine := master.NewEngine(store, master.NewProbe(base))
	svc := service.NewMasterService(store, updater, engine, nil)

	server := httptest.NewServer(NewHandler(svc).Routes())
	t.Cleanup(server.Close)
	return server
}

func getEnvelope(t *testing.T, url string) domain.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (failures are envelope data)", resp.StatusCode)
	}

	var envelope domain.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return envelope
}

func TestRoutes(t *testing.T) {
	server := newTestServer(t)

	t.Run("search", func(t *testing.T) {
		envelope := getEnvelope(t, server.URL+"/api/symbols/search?q=apple")
		if envelope.Status != domain.StatusSuccess || envelope.TotalCount != 1 {
			t.Errorf("unexpected envelope %+v", envelope)
		}
	})

	t.Run("search without query", func(t *testing.T) {
		envelope := getEnvelope(t, server.URL+"/api/symbols/search")
		if envelope.Status != domain.StatusError {
			t.Errorf("Status = %s, want error", envelope.Status)
		}
	})

	t.Run("symbol detail", func(t *testing.T) {
		envelope := getEnvelope(t, server.URL+"/api/symbols/AAPL")
		if envelope.Status != domain.StatusSuccess {
			t.Fatalf("Status = %s, want success", envelope.Status)
		}
	})

	t.Run("exchanges", func(t *testing.T) {
		envelope := getEnvelope(t, server.URL+"/api/exchanges")
		if envelope.TotalCount != 6 {
			t.Errorf("TotalCount = %d, want 6", envelope.TotalCount)
		}
	})

	t.Run("status", func(t *testing.T) {
		envelope := getEnvelope(t, server.URL+"/api/master/status")
		if envelope.Status != domain.StatusSuccess {
			t.Errorf("Status = %s, want success", envelope.Status)
		}
	})

	t.Run("update with unknown exchange", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/master/update", "application/json",
			strings.NewReader(`{"exchanges":["moex"]}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		var envelope domain.Response
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if envelope.Status != domain.StatusError {
			t.Errorf("Status = %s, want error", envelope.Status)
		}
	})
}
