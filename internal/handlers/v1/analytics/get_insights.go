package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
)

// GetInsightsInput is the Huma input for fetching forecast insights.
type GetInsightsInput struct {
	UserID string `path:"userID" doc:"User UUID"`
	Days   int    `query:"days" default:"30" minimum:"1" maximum:"365" doc:"Forecast horizon in days"`
}

// ForecastStats is the API model for the numeric summary of a forecast.
type ForecastStats struct {
	Trend   float64 `json:"trend" doc:"Last minus first predicted cashflow"`
	Average float64 `json:"average" doc:"Mean predicted cashflow"`
	Min     float64 `json:"min" doc:"Lowest predicted cashflow"`
	Max     float64 `json:"max" doc:"Highest predicted cashflow"`
}

// GetInsightsResponseBody is the response body for fetching insights.
type GetInsightsResponseBody struct {
	UserID   string        `json:"userID" doc:"User UUID the insights belong to"`
	Summary  string        `json:"summary" doc:"One-line reading of the forecast"`
	Insights []string      `json:"insights" doc:"Qualitative statements derived from the forecast"`
	Stats    ForecastStats `json:"stats" doc:"Numeric summary of the forecast series"`
}

// GetInsightsOutput is the Huma output for fetching insights.
type GetInsightsOutput struct {
	Body GetInsightsResponseBody
}

// insightExtractor is the interface for deriving insights from forecasts.
type insightExtractor interface {
	Insights(ctx context.Context, userID uuid.UUID, horizonDays int) (*service.InsightResult, error)
}

// GetInsightsHandler handles GET /v1/analytics/{userID}/insights.
type GetInsightsHandler struct {
	Analytics insightExtractor
}

// NewGetInsightsHandler creates a new GetInsightsHandler.
func NewGetInsightsHandler(svc insightExtractor) *GetInsightsHandler {
	return &GetInsightsHandler{Analytics: svc}
}

// Register registers the insights endpoint with the Huma API.
func (h *GetInsightsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-insights",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/{userID}/insights",
		Summary:     "Get forecast insights",
		Description: "Returns qualitative statements and summary statistics derived from a user's cashflow forecast.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *GetInsightsHandler) handle(ctx context.Context, input *GetInsightsInput) (*GetInsightsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("userID", userID.String())
		stopTimer = logData.AddTiming("insightsMs")
	}
	result, err := h.Analytics.Insights(ctx, userID, input.Days)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError("extract insights", err)
	}

	if logData != nil {
		logData.AddData("insightCount", len(result.Insights))
	}

	insights := result.Insights
	if insights == nil {
		insights = []string{}
	}

	return &GetInsightsOutput{Body: GetInsightsResponseBody{
		UserID:   userID.String(),
		Summary:  result.Summary,
		Insights: insights,
		Stats: ForecastStats{
			Trend:   result.Stats.Trend,
			Average: result.Stats.Average,
			Min:     result.Stats.Min,
			Max:     result.Stats.Max,
		},
	}}, nil
}
