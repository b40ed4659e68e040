package service

// ForecastPoint is one predicted day of net cashflow. Dates stay in the
// engine's YYYY-MM-DD form; the server never does date arithmetic on them.
type ForecastPoint struct {
	Date              string
	PredictedCashflow float64
}

// ForecastStats summarizes a forecast series numerically.
type ForecastStats struct {
	Trend   float64
	Average float64
	Min     float64
	Max     float64
}

// InsightResult is the qualitative reading of a forecast series.
type InsightResult struct {
	Summary  string
	Insights []string
	Stats    ForecastStats
}

// CreditScoreResult is a bounded score plus the factors that produced it.
type CreditScoreResult struct {
	Score   int
	Factors []string
}

// ClassifiedTransaction is a transaction with its predicted category.
// ClassificationFailed marks rows whose categorizer call did not succeed;
// such rows carry the sentinel category rather than failing the batch.
type ClassifiedTransaction struct {
	Transaction
	Category             string
	ClassificationFailed bool
}
