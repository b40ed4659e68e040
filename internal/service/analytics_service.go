package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/fingerprint"
	"github.com/carson-networks/analytics-server/internal/storage"
	"github.com/carson-networks/analytics-server/internal/storage/sqlconfig"
	"github.com/carson-networks/analytics-server/internal/upstream/forecast"
)

const (
	// MinTransactionsForForecast is checked before any outbound call; the
	// engine rejects shorter histories, so the round trip would be wasted.
	MinTransactionsForForecast = 2

	// DefaultHorizonDays is used when a request does not name a horizon.
	DefaultHorizonDays = 30

	forecastDateFormat = "2006-01-02"
)

// forecastClient is the narrow view of the external forecasting engine.
type forecastClient interface {
	Forecast(ctx context.Context, transactions []forecast.TransactionPoint, days int) ([]forecast.Point, error)
}

// AnalyticsService runs the derived-analytics pipeline: change detection
// gates the expensive upstream calls, and every completed result lands in
// the cache so an unchanged transaction set never recomputes.
type AnalyticsService struct {
	storage     *storage.Storage
	cache       *cache.Store
	detector    *fingerprint.Detector
	categorizer categorizerClient
	forecaster  forecastClient

	userLocks sync.Map // uuid.UUID -> *sync.Mutex

	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *storage.Storage, cacheStore *cache.Store, cat categorizerClient, fc forecastClient) *AnalyticsService {
	return &AnalyticsService{
		storage:     store,
		cache:       cacheStore,
		detector:    fingerprint.NewDetector(cacheStore),
		categorizer: cat,
		forecaster:  fc,
		now:         time.Now,
	}
}

// Forecast returns the predicted cashflow series for a user, serving from
// cache when the transaction set is unchanged.
func (s *AnalyticsService) Forecast(ctx context.Context, userID uuid.UUID, horizonDays int) ([]ForecastPoint, error) {
	series, _, err := s.forecastSeries(ctx, userID, horizonDays)
	return series, err
}

// Insights returns the qualitative reading of a user's forecast.
func (s *AnalyticsService) Insights(ctx context.Context, userID uuid.UUID, horizonDays int) (*InsightResult, error) {
	series, _, err := s.forecastSeries(ctx, userID, horizonDays)
	if err != nil {
		return nil, err
	}

	result := ExtractInsights(series)
	return &result, nil
}

// CreditScore returns the rule-based score derived from recent history and
// the forecast.
func (s *AnalyticsService) CreditScore(ctx context.Context, userID uuid.UUID, horizonDays int) (*CreditScoreResult, error) {
	series, rows, err := s.forecastSeries(ctx, userID, horizonDays)
	if err != nil {
		return nil, err
	}

	result := CreditScore(rows, series, s.now())
	return &result, nil
}

// ClassifiedTransactions returns the user's history with predicted
// categories, recomputing only when the transaction set changed. The batch
// is cached only after every per-row call has settled.
func (s *AnalyticsService) ClassifiedTransactions(ctx context.Context, userID uuid.UUID) ([]ClassifiedTransaction, error) {
	rows, err := s.storage.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("classification for user %s: %w", userID, err)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	s.refreshFingerprint(userID, rows)

	if cached, ok := s.cache.Get(cache.NamespaceClassification, userID.String()); ok {
		return cached.([]ClassifiedTransaction), nil
	}

	results := classifyAll(ctx, s.categorizer, rows)
	s.cache.Set(cache.NamespaceClassification, userID.String(), results, cache.DefaultTTL)
	return results, nil
}

// CacheStats exposes per-namespace counters to the request layer.
func (s *AnalyticsService) CacheStats() map[cache.Namespace]cache.Stats {
	return s.cache.StatsAll()
}

// ClearCache drops every cached result. Administrative reset only.
func (s *AnalyticsService) ClearCache() {
	s.cache.ClearAll()
}

// forecastSeries is the shared pipeline front half: fetch history, detect
// change, invalidate on change, then serve cached or fresh forecast. It also
// returns the fetched rows so scoring does not re-read storage.
func (s *AnalyticsService) forecastSeries(ctx context.Context, userID uuid.UUID, horizonDays int) ([]ForecastPoint, []*sqlconfig.Transaction, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	rows, err := s.storage.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("forecast for user %s: %w", userID, err)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	s.refreshFingerprint(userID, rows)

	key := forecastKey(userID, horizonDays)
	if cached, ok := s.cache.Get(cache.NamespaceForecast, key); ok {
		return cached.([]ForecastPoint), rows, nil
	}

	if len(rows) < MinTransactionsForForecast {
		return nil, nil, fmt.Errorf("forecast for user %s: %w", userID, ErrInsufficientData)
	}

	points, err := s.forecaster.Forecast(ctx, toEnginePoints(rows), horizonDays)
	if err != nil {
		return nil, nil, fmt.Errorf("forecast for user %s: %w", userID, err)
	}

	series := make([]ForecastPoint, len(points))
	for i, point := range points {
		series[i] = ForecastPoint{Date: point.Date, PredictedCashflow: point.PredictedCashflow}
	}

	s.cache.Set(cache.NamespaceForecast, key, series, cache.DefaultTTL)
	return series, rows, nil
}

// refreshFingerprint records the new digest and cascades invalidation when
// the transaction set changed. Callers must hold the user's lock so no
// concurrent request for the same user can observe the new fingerprint with
// stale derived entries still present.
func (s *AnalyticsService) refreshFingerprint(userID uuid.UUID, rows []*sqlconfig.Transaction) {
	if !s.detector.HasChanged(userID, rows) {
		return
	}

	prefix := userID.String() + ":"
	s.cache.DeleteWhere(cache.NamespaceForecast, func(key string) bool {
		return len(key) >= len(prefix) && key[:len(prefix)] == prefix
	})
	s.cache.Delete(cache.NamespaceClassification, userID.String())
}

// lockUser serializes pipeline runs per user; distinct users never contend.
func (s *AnalyticsService) lockUser(userID uuid.UUID) func() {
	actual, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func forecastKey(userID uuid.UUID, horizonDays int) string {
	return userID.String() + ":" + strconv.Itoa(horizonDays)
}

func toEnginePoints(rows []*sqlconfig.Transaction) []forecast.TransactionPoint {
	points := make([]forecast.TransactionPoint, len(rows))
	for i, row := range rows {
		points[i] = forecast.TransactionPoint{
			TransactionDate: row.TransactionDate.Format(forecastDateFormat),
			Debit:           nullDecimalFloat(row.Debit),
			Credit:          nullDecimalFloat(row.Credit),
		}
	}
	return points
}

func nullDecimalFloat(amount decimal.NullDecimal) float64 {
	if !amount.Valid {
		return 0
	}
	return amount.Decimal.InexactFloat64()
}
