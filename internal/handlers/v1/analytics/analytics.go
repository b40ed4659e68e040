// Package analytics exposes the derived-analytics pipeline over HTTP:
// cashflow forecasts, insights, credit scores, and classified transactions.
// All endpoints are GET and safe to retry; caching happens in the service
// layer, never here.
package analytics

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/analytics-server/internal/service"
	"github.com/carson-networks/analytics-server/internal/upstream/forecast"
)

// ForecastPoint is the API model for one predicted day of net cashflow.
type ForecastPoint struct {
	Date              string  `json:"date" doc:"Forecast day in YYYY-MM-DD form"`
	PredictedCashflow float64 `json:"predictedCashflow" doc:"Predicted net cashflow for the day"`
}

// parseUserID validates the path parameter before any service call.
func parseUserID(raw string) (uuid.UUID, error) {
	userID, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid user ID", err)
	}
	return userID, nil
}

// mapServiceError translates pipeline errors into HTTP statuses. Too little
// history is the caller's problem, an unreachable or misbehaving forecast
// engine is a gateway failure, and everything else is internal.
func mapServiceError(action string, err error) error {
	switch {
	case errors.Is(err, service.ErrInsufficientData):
		return huma.NewError(http.StatusUnprocessableEntity, "not enough transaction history to forecast", err)
	case errors.Is(err, forecast.ErrUnavailable):
		return huma.NewError(http.StatusBadGateway, "forecast engine unreachable", err)
	case errors.Is(err, forecast.ErrBadResponse):
		return huma.NewError(http.StatusBadGateway, "forecast engine returned an invalid response", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "failed to "+action, err)
	}
}
