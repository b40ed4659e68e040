package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/analytics-server/internal/storage/sqlconfig"
)

// Scoring thresholds. Tuning lives here, never inline in the rules.
const (
	baseScore          = 100
	recentWindowMonths = 6

	minRecentTransactions      = 5
	insufficientHistoryPenalty = 20

	largeDebitThreshold = 50_000
	maxLargeDebits      = 3
	largeDebitPenalty   = 15

	minMeanCredit    = 20_000
	lowCreditPenalty = 20

	netOutflowPenalty = 25

	positiveForecastBonus   = 10
	negativeForecastPenalty = 15

	forecastVolatilityPenalty = 10
)

var largeDebit = decimal.NewFromInt(largeDebitThreshold)

// CreditScore applies the deterministic scoring rules over recent history and
// the forecast series. The now parameter anchors the trailing window so the
// function stays pure.
func CreditScore(rows []*sqlconfig.Transaction, series []ForecastPoint, now time.Time) CreditScoreResult {
	score := baseScore
	var factors []string

	windowStart := now.AddDate(0, -recentWindowMonths, 0)
	var recent []*sqlconfig.Transaction
	for _, row := range rows {
		if !row.TransactionDate.Before(windowStart) {
			recent = append(recent, row)
		}
	}

	if len(recent) < minRecentTransactions {
		score -= insufficientHistoryPenalty
		factors = append(factors, fmt.Sprintf("Fewer than %d transactions in the last %d months.", minRecentTransactions, recentWindowMonths))
	}

	largeDebits := 0
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	creditCount := 0
	for _, row := range recent {
		if row.Debit.Valid {
			totalDebit = totalDebit.Add(row.Debit.Decimal)
			if row.Debit.Decimal.GreaterThan(largeDebit) {
				largeDebits++
			}
		}
		if row.Credit.Valid {
			totalCredit = totalCredit.Add(row.Credit.Decimal)
			creditCount++
		}
	}

	if largeDebits > maxLargeDebits {
		score -= largeDebitPenalty
		factors = append(factors, fmt.Sprintf("More than %d large debits (over %d) in recent history.", maxLargeDebits, largeDebitThreshold))
	}

	meanCredit := decimal.Zero
	if creditCount > 0 {
		meanCredit = totalCredit.Div(decimal.NewFromInt(int64(creditCount)))
	}
	if meanCredit.LessThan(decimal.NewFromInt(minMeanCredit)) {
		score -= lowCreditPenalty
		factors = append(factors, fmt.Sprintf("Average recent credit below %d.", minMeanCredit))
	}

	if totalDebit.GreaterThan(totalCredit) {
		score -= netOutflowPenalty
		factors = append(factors, "Recent debits exceed recent credits.")
	}

	meanForecast, stddev := forecastMoments(series)
	if meanForecast > 0 {
		score += positiveForecastBonus
	} else {
		score -= negativeForecastPenalty
		factors = append(factors, "Negative predicted cashflow over the forecast horizon.")
	}

	if stddev > 0.5*meanForecast {
		score -= forecastVolatilityPenalty
		factors = append(factors, "High volatility in predicted cashflow.")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	if len(factors) == 0 {
		factors = append(factors, "Healthy recent activity and positive predicted cashflow.")
	}

	return CreditScoreResult{Score: score, Factors: factors}
}

// forecastMoments returns the mean and population standard deviation of the series.
func forecastMoments(series []ForecastPoint) (mean, stddev float64) {
	if len(series) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, point := range series {
		sum += point.PredictedCashflow
	}
	mean = sum / float64(len(series))

	variance := 0.0
	for _, point := range series {
		delta := point.PredictedCashflow - mean
		variance += delta * delta
	}
	variance /= float64(len(series))

	return mean, math.Sqrt(variance)
}
