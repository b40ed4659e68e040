package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractInsights_EmptySeries(t *testing.T) {
	result := ExtractInsights(nil)

	assert.Equal(t, "No forecast data available.", result.Summary)
	assert.Empty(t, result.Insights)
	assert.Equal(t, ForecastStats{}, result.Stats)
}

func TestExtractInsights_DecliningSeries(t *testing.T) {
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: 100},
		{Date: "2025-07-02", PredictedCashflow: 50},
		{Date: "2025-07-03", PredictedCashflow: -20},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Predicted cashflow is declining over the forecast period.")
	assert.Contains(t, result.Insights, "At least one day in the forecast has negative predicted cashflow.")
	assert.Contains(t, result.Insights, "Peak cashflow of 100.00 expected on 2025-07-01.")
	assert.Contains(t, result.Insights, "Lowest cashflow of -20.00 expected on 2025-07-03.")
	assert.Contains(t, result.Insights, "Average burn rate on negative days is 20.00.")

	assert.Equal(t, -120.0, result.Stats.Trend)
	assert.InDelta(t, 43.33, result.Stats.Average, 0.01)
	assert.Equal(t, -20.0, result.Stats.Min)
	assert.Equal(t, 100.0, result.Stats.Max)
}

func TestExtractInsights_IncreasingSeries(t *testing.T) {
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: 10},
		{Date: "2025-07-02", PredictedCashflow: 20},
		{Date: "2025-07-03", PredictedCashflow: 30},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Predicted cashflow is increasing over the forecast period.")
	assert.Contains(t, result.Insights, "Predicted cashflow is consistently non-negative across the forecast.")
	assert.NotContains(t, result.Insights, "At least one day in the forecast has negative predicted cashflow.")
	assert.Equal(t, "Between 2025-07-01 and 2025-07-03, predicted cashflow is increasing with an average of 20.00.", result.Summary)

	// no negative days, so no burn rate line
	for _, insight := range result.Insights {
		assert.NotContains(t, insight, "burn rate")
	}
}

func TestExtractInsights_StableSinglePoint(t *testing.T) {
	series := []ForecastPoint{{Date: "2025-07-01", PredictedCashflow: 42}}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Predicted cashflow is stable over the forecast period.")
	assert.Contains(t, result.Insights, "Peak cashflow of 42.00 expected on 2025-07-01.")
	assert.Contains(t, result.Insights, "Lowest cashflow of 42.00 expected on 2025-07-01.")
	assert.Equal(t, 0.0, result.Stats.Trend)
}

func TestExtractInsights_NegativeMeanLiquidityRisk(t *testing.T) {
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: -100},
		{Date: "2025-07-02", PredictedCashflow: -200},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Average predicted cashflow is negative (-150.00), indicating a liquidity risk.")
}

func TestExtractInsights_ZeroMeanVolatility(t *testing.T) {
	// mean of zero degenerates the relative threshold; any spread must still
	// register as high volatility
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: 50},
		{Date: "2025-07-02", PredictedCashflow: -50},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Forecast volatility is high (spread 100.00).")
}

func TestExtractInsights_FlatSeriesLowVolatility(t *testing.T) {
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: 500},
		{Date: "2025-07-02", PredictedCashflow: 500},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Forecast volatility is low.")
}

func TestExtractInsights_TiesFavorFirstOccurrence(t *testing.T) {
	series := []ForecastPoint{
		{Date: "2025-07-01", PredictedCashflow: 80},
		{Date: "2025-07-02", PredictedCashflow: 80},
		{Date: "2025-07-03", PredictedCashflow: 10},
		{Date: "2025-07-04", PredictedCashflow: 10},
	}

	result := ExtractInsights(series)

	assert.Contains(t, result.Insights, "Peak cashflow of 80.00 expected on 2025-07-01.")
	assert.Contains(t, result.Insights, "Lowest cashflow of 10.00 expected on 2025-07-03.")
}
