package handler

import (
	"net/http"
	"runtime"
	"time"

	"avkngifts-api/internal/catalog"
	"avkngifts-api/pkg/response"
)

// StartTime tracks when the server started for uptime calculation
var StartTime = time.Now()

// Handler contains the operational HTTP handlers.
type Handler struct {
	version   string
	catalog   *catalog.Store
	ledgerUp  bool
	cacheType string
}

// New creates the operational handler. ledgerUp records whether a ledger
// backend was reachable at startup.
func New(version string, store *catalog.Store, ledgerUp bool, cacheType string) *Handler {
	return &Handler{
		version:   version,
		catalog:   store,
		ledgerUp:  ledgerUp,
		cacheType: cacheType,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	})
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/v1/ready
//
// The ledger is deliberately absent here: the service stays ready when the
// ledger degrades, per its availability-over-consistency contract.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{
		{Name: "api", Status: "ok"},
		{Name: "catalog", Status: okWhen(h.catalog != nil && h.catalog.Len() > 0)},
		{Name: "sessions", Status: okWhen(h.cacheType != "")},
	}

	allReady := true
	for _, check := range checks {
		if check.Status != "ok" {
			allReady = false
			break
		}
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	if !allReady {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response.OK(w, resp)
}

// StatusChecks represents the checks in status response
type StatusChecks struct {
	Ledger   string  `json:"ledger"`
	Catalog  int     `json:"catalog_items"`
	MemoryMB float64 `json:"memory_mb"`
}

// StatusResponse represents the unified status response for uptime monitoring
type StatusResponse struct {
	Service       string       `json:"service"`
	Status        string       `json:"status"`
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Checks        StatusChecks `json:"checks"`
}

// Status handles GET /api/status - unified health check for uptime monitoring
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	items := 0
	if h.catalog != nil {
		items = h.catalog.Len()
	}

	resp := StatusResponse{
		Service:       "avkngifts-api",
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(StartTime).Seconds()),
		Checks: StatusChecks{
			Ledger:   okWhen(h.ledgerUp),
			Catalog:  items,
			MemoryMB: float64(int(memoryMB*100)) / 100,
		},
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}

func okWhen(ok bool) string {
	if ok {
		return "ok"
	}
	return "degraded"
}
