// Package cache exposes administrative visibility and control over the
// in-memory result cache.
package cache

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/logging"
)

// NamespaceStats is the API model for one namespace's counters.
type NamespaceStats struct {
	Namespace string `json:"namespace" doc:"Cache namespace name"`
	Hits      uint64 `json:"hits" doc:"Lookups served from the cache"`
	Misses    uint64 `json:"misses" doc:"Lookups that fell through to recomputation"`
	KeyCount  int    `json:"keyCount" doc:"Live entries in the namespace"`
}

// GetStatsResponseBody is the response body for cache statistics.
type GetStatsResponseBody struct {
	Namespaces []NamespaceStats `json:"namespaces" doc:"Counters per cache namespace"`
}

// GetStatsOutput is the Huma output for cache statistics.
type GetStatsOutput struct {
	Body GetStatsResponseBody
}

// statsReader is the interface for reading cache counters.
type statsReader interface {
	CacheStats() map[cache.Namespace]cache.Stats
}

// GetStatsHandler handles GET /v1/cache/stats.
type GetStatsHandler struct {
	Analytics statsReader
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(svc statsReader) *GetStatsHandler {
	return &GetStatsHandler{Analytics: svc}
}

// Register registers the cache stats endpoint with the Huma API.
func (h *GetStatsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cache-stats",
		Method:      http.MethodGet,
		Path:        "/v1/cache/stats",
		Summary:     "Get cache statistics",
		Description: "Returns hit, miss, and key counts per cache namespace.",
		Tags:        []string{"Cache"},
	}, h.handle)
}

func (h *GetStatsHandler) handle(ctx context.Context, _ *struct{}) (*GetStatsOutput, error) {
	logData := logging.GetLogData(ctx)

	all := h.Analytics.CacheStats()

	// fixed ordering keeps the response stable for clients and tests
	ordered := []cache.Namespace{cache.NamespaceClassification, cache.NamespaceForecast, cache.NamespaceFingerprint}

	resp := GetStatsResponseBody{Namespaces: make([]NamespaceStats, 0, len(ordered))}
	for _, ns := range ordered {
		stats := all[ns]
		resp.Namespaces = append(resp.Namespaces, NamespaceStats{
			Namespace: string(ns),
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			KeyCount:  stats.KeyCount,
		})
	}

	if logData != nil {
		logData.AddData("namespaceCount", len(resp.Namespaces))
	}

	return &GetStatsOutput{Body: resp}, nil
}
