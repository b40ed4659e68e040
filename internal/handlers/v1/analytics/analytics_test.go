package analytics

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/analytics-server/internal/service"
)

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) Forecast(ctx context.Context, userID uuid.UUID, horizonDays int) ([]service.ForecastPoint, error) {
	args := m.Called(ctx, userID, horizonDays)
	series, _ := args.Get(0).([]service.ForecastPoint)
	return series, args.Error(1)
}

func (m *mockAnalytics) Insights(ctx context.Context, userID uuid.UUID, horizonDays int) (*service.InsightResult, error) {
	args := m.Called(ctx, userID, horizonDays)
	result, _ := args.Get(0).(*service.InsightResult)
	return result, args.Error(1)
}

func (m *mockAnalytics) CreditScore(ctx context.Context, userID uuid.UUID, horizonDays int) (*service.CreditScoreResult, error) {
	args := m.Called(ctx, userID, horizonDays)
	result, _ := args.Get(0).(*service.CreditScoreResult)
	return result, args.Error(1)
}

func (m *mockAnalytics) ClassifiedTransactions(ctx context.Context, userID uuid.UUID) ([]service.ClassifiedTransaction, error) {
	args := m.Called(ctx, userID)
	classified, _ := args.Get(0).([]service.ClassifiedTransaction)
	return classified, args.Error(1)
}

func newAnalyticsTestAPI(t *testing.T, svc *mockAnalytics) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetForecastHandler(svc).Register(api)
	NewGetInsightsHandler(svc).Register(api)
	NewGetCreditScoreHandler(svc).Register(api)
	NewGetClassifiedHandler(svc).Register(api)
	return api
}
