package cache

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/analytics-server/internal/logging"
)

// ClearResponseBody is the response body for a cache clear.
type ClearResponseBody struct {
	Cleared bool `json:"cleared" doc:"Always true once the clear has completed"`
}

// ClearOutput is the Huma output for a cache clear.
type ClearOutput struct {
	Body ClearResponseBody
}

// cacheClearer is the interface for dropping all cached results.
type cacheClearer interface {
	ClearCache()
}

// ClearHandler handles POST /v1/cache/clear.
type ClearHandler struct {
	Analytics cacheClearer
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(svc cacheClearer) *ClearHandler {
	return &ClearHandler{Analytics: svc}
}

// Register registers the cache clear endpoint with the Huma API.
func (h *ClearHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-cache",
		Method:      http.MethodPost,
		Path:        "/v1/cache/clear",
		Summary:     "Clear the cache",
		Description: "Drops every cached result in every namespace. The next request per user recomputes from storage.",
		Tags:        []string{"Cache"},
	}, h.handle)
}

func (h *ClearHandler) handle(ctx context.Context, _ *struct{}) (*ClearOutput, error) {
	logData := logging.GetLogData(ctx)

	h.Analytics.ClearCache()

	if logData != nil {
		logData.AddData("cacheCleared", true)
	}

	return &ClearOutput{Body: ClearResponseBody{Cleared: true}}, nil
}
