package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
)

// GetForecastInput is the Huma input for fetching a forecast.
type GetForecastInput struct {
	UserID string `path:"userID" doc:"User UUID"`
	Days   int    `query:"days" default:"30" minimum:"1" maximum:"365" doc:"Forecast horizon in days"`
}

// GetForecastResponseBody is the response body for fetching a forecast.
type GetForecastResponseBody struct {
	UserID   string          `json:"userID" doc:"User UUID the forecast belongs to"`
	Days     int             `json:"days" doc:"Forecast horizon in days"`
	Forecast []ForecastPoint `json:"forecast" doc:"Predicted daily net cashflow"`
}

// GetForecastOutput is the Huma output for fetching a forecast.
type GetForecastOutput struct {
	Body GetForecastResponseBody
}

// forecaster is the interface for producing forecast series.
type forecaster interface {
	Forecast(ctx context.Context, userID uuid.UUID, horizonDays int) ([]service.ForecastPoint, error)
}

// GetForecastHandler handles GET /v1/analytics/{userID}/forecast.
type GetForecastHandler struct {
	Analytics forecaster
}

// NewGetForecastHandler creates a new GetForecastHandler.
func NewGetForecastHandler(svc forecaster) *GetForecastHandler {
	return &GetForecastHandler{Analytics: svc}
}

// Register registers the forecast endpoint with the Huma API.
func (h *GetForecastHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/{userID}/forecast",
		Summary:     "Get cashflow forecast",
		Description: "Returns the predicted daily net cashflow for a user over the requested horizon.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *GetForecastHandler) handle(ctx context.Context, input *GetForecastInput) (*GetForecastOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("userID", userID.String())
		stopTimer = logData.AddTiming("forecastMs")
	}
	series, err := h.Analytics.Forecast(ctx, userID, input.Days)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError("compute forecast", err)
	}

	if logData != nil {
		logData.AddData("forecastPoints", len(series))
	}

	resp := GetForecastResponseBody{
		UserID:   userID.String(),
		Days:     input.Days,
		Forecast: make([]ForecastPoint, len(series)),
	}
	for i, point := range series {
		resp.Forecast[i] = ForecastPoint{
			Date:              point.Date,
			PredictedCashflow: point.PredictedCashflow,
		}
	}

	return &GetForecastOutput{Body: resp}, nil
}
