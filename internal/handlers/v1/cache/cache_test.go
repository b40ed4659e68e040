package cache

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/analytics-server/internal/cache"
)

type mockCacheAdmin struct {
	mock.Mock
}

func (m *mockCacheAdmin) CacheStats() map[cache.Namespace]cache.Stats {
	args := m.Called()
	stats, _ := args.Get(0).(map[cache.Namespace]cache.Stats)
	return stats
}

func (m *mockCacheAdmin) ClearCache() {
	m.Called()
}

func newCacheTestAPI(t *testing.T, svc *mockCacheAdmin) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetStatsHandler(svc).Register(api)
	NewClearHandler(svc).Register(api)
	return api
}

func TestHTTP_GetCacheStats(t *testing.T) {
	mockSvc := new(mockCacheAdmin)
	mockSvc.On("CacheStats").Return(map[cache.Namespace]cache.Stats{
		cache.NamespaceClassification: {Hits: 4, Misses: 2, KeyCount: 1},
		cache.NamespaceForecast:       {Hits: 10, Misses: 3, KeyCount: 2},
		cache.NamespaceFingerprint:    {Hits: 0, Misses: 6, KeyCount: 3},
	})

	resp := newCacheTestAPI(t, mockSvc).Get("/v1/cache/stats")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetStatsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Namespaces, 3)

	assert.Equal(t, "classification", body.Namespaces[0].Namespace)
	assert.Equal(t, uint64(4), body.Namespaces[0].Hits)
	assert.Equal(t, "forecast", body.Namespaces[1].Namespace)
	assert.Equal(t, 2, body.Namespaces[1].KeyCount)
	assert.Equal(t, "fingerprint", body.Namespaces[2].Namespace)
	assert.Equal(t, uint64(6), body.Namespaces[2].Misses)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetCacheStats_Empty(t *testing.T) {
	mockSvc := new(mockCacheAdmin)
	mockSvc.On("CacheStats").Return(map[cache.Namespace]cache.Stats{})

	resp := newCacheTestAPI(t, mockSvc).Get("/v1/cache/stats")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetStatsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Namespaces, 3, "all namespaces reported even when empty")
	for _, ns := range body.Namespaces {
		assert.Zero(t, ns.KeyCount)
	}
}

func TestHTTP_ClearCache(t *testing.T) {
	mockSvc := new(mockCacheAdmin)
	mockSvc.On("ClearCache").Return()

	resp := newCacheTestAPI(t, mockSvc).Post("/v1/cache/clear")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ClearResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Cleared)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ClearCache_GetNotAllowed(t *testing.T) {
	mockSvc := new(mockCacheAdmin)

	resp := newCacheTestAPI(t, mockSvc).Get("/v1/cache/clear")

	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	mockSvc.AssertNotCalled(t, "ClearCache")
}
