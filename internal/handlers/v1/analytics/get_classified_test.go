package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/analytics-server/internal/service"
)

func TestHTTP_GetClassified_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	txDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	classified := []service.ClassifiedTransaction{
		{
			Transaction: service.Transaction{
				ID:              uuid.Must(uuid.NewV4()),
				UserID:          userID,
				TransactionDate: txDate,
				Debit:           decimal.NewNullDecimal(decimal.RequireFromString("45.20")),
				Reference:       "GROCER-001",
				Remarks:         "Weekly shop",
			},
			Category: "GROCERIES",
		},
		{
			Transaction: service.Transaction{
				ID:              uuid.Must(uuid.NewV4()),
				UserID:          userID,
				TransactionDate: txDate,
				Credit:          decimal.NewNullDecimal(decimal.RequireFromString("2500.00")),
				Reference:       "PAYROLL",
				Remarks:         "Salary",
			},
			Category:             "UNCATEGORIZED",
			ClassificationFailed: true,
		},
	}

	mockSvc := new(mockAnalytics)
	mockSvc.On("ClassifiedTransactions", mock.Anything, userID).Return(classified, nil)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/classified")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetClassifiedResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.String(), body.UserID)
	assert.Len(t, body.Transactions, 2)

	first := body.Transactions[0]
	assert.Equal(t, "GROCERIES", first.Category)
	assert.False(t, first.ClassificationFailed)
	assert.NotNil(t, first.Debit)
	assert.Equal(t, "45.2", *first.Debit)
	assert.Nil(t, first.Credit)
	assert.Equal(t, txDate.Format(time.RFC3339), first.TransactionDate)

	second := body.Transactions[1]
	assert.Equal(t, "UNCATEGORIZED", second.Category)
	assert.True(t, second.ClassificationFailed)
	assert.Nil(t, second.Debit)
	assert.NotNil(t, second.Credit)
	assert.Equal(t, "2500", *second.Credit)

	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetClassified_EmptyHistory(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("ClassifiedTransactions", mock.Anything, userID).
		Return([]service.ClassifiedTransaction{}, nil)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/classified")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GetClassifiedResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Transactions)
}

func TestHTTP_GetClassified_InvalidUserID(t *testing.T) {
	mockSvc := new(mockAnalytics)

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/not-a-uuid/classified")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "ClassifiedTransactions")
}

func TestHTTP_GetClassified_ServiceError(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAnalytics)
	mockSvc.On("ClassifiedTransactions", mock.Anything, userID).
		Return(nil, errors.New("database unavailable"))

	resp := newAnalyticsTestAPI(t, mockSvc).Get("/v1/analytics/" + userID.String() + "/classified")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
