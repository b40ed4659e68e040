package analytics

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/analytics-server/internal/service"
	"github.com/carson-networks/analytics-server/internal/upstream/forecast"
)

func TestHTTP_GetCreditScore_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("CreditScore", mock.Anything, userID, 30).
		Return(&service.CreditScoreResult{
			Score:   65,
			Factors: []string{"Recent debits exceed recent credits.", "High volatility in predicted cashflow."},
		}, nil)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/credit-score")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetCreditScoreResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.String(), body.UserID)
	assert.Equal(t, 65, body.Score)
	assert.Len(t, body.Factors, 2)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetCreditScore_CustomHorizon(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("CreditScore", mock.Anything, userID, 60).
		Return(&service.CreditScoreResult{
			Score:   100,
			Factors: []string{"Healthy recent activity and positive predicted cashflow."},
		}, nil)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/credit-score?days=60")

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetCreditScore_InsufficientData(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("CreditScore", mock.Anything, userID, 30).
		Return(nil, service.ErrInsufficientData)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/credit-score")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_GetCreditScore_EngineUnavailable(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("CreditScore", mock.Anything, userID, 30).
		Return(nil, forecast.ErrUnavailable)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/credit-score")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
}
