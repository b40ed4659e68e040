package service

import (
	"fmt"
	"math"
)

// noForecastData is the fixed result for an empty series; an empty forecast
// is a valid state, not an error.
var noForecastData = InsightResult{
	Summary: "No forecast data available.",
}

// ExtractInsights derives qualitative statements from a forecast series.
// Pure and total: any input, including an empty series, yields a result.
func ExtractInsights(series []ForecastPoint) InsightResult {
	if len(series) == 0 {
		return noForecastData
	}

	first := series[0].PredictedCashflow
	last := series[len(series)-1].PredictedCashflow

	sum := 0.0
	minIdx, maxIdx := 0, 0
	for i, point := range series {
		sum += point.PredictedCashflow
		// first occurrence wins on ties
		if point.PredictedCashflow > series[maxIdx].PredictedCashflow {
			maxIdx = i
		}
		if point.PredictedCashflow < series[minIdx].PredictedCashflow {
			minIdx = i
		}
	}
	mean := sum / float64(len(series))
	minVal := series[minIdx].PredictedCashflow
	maxVal := series[maxIdx].PredictedCashflow

	var insights []string

	trend := trendLabel(first, last)
	insights = append(insights, fmt.Sprintf("Predicted cashflow is %s over the forecast period.", trend))

	switch {
	case mean < 0:
		insights = append(insights, fmt.Sprintf("Average predicted cashflow is negative (%.2f), indicating a liquidity risk.", mean))
	case mean < first:
		insights = append(insights, "Cashflow momentum is weakening relative to the start of the period.")
	default:
		insights = append(insights, "Average predicted cashflow shows positive strength.")
	}

	hasNegative := minVal < 0
	if hasNegative {
		insights = append(insights, "At least one day in the forecast has negative predicted cashflow.")
	} else {
		insights = append(insights, "Predicted cashflow is consistently non-negative across the forecast.")
	}

	// When the mean is exactly zero the relative threshold degenerates, so
	// any spread at all counts as high volatility.
	spread := maxVal - minVal
	if spread > 0.5*mean {
		insights = append(insights, fmt.Sprintf("Forecast volatility is high (spread %.2f).", spread))
	} else {
		insights = append(insights, "Forecast volatility is low.")
	}

	insights = append(insights,
		fmt.Sprintf("Peak cashflow of %.2f expected on %s.", maxVal, series[maxIdx].Date),
		fmt.Sprintf("Lowest cashflow of %.2f expected on %s.", minVal, series[minIdx].Date),
	)

	if hasNegative {
		insights = append(insights, fmt.Sprintf("Average burn rate on negative days is %.2f.", burnRate(series)))
	}

	summary := fmt.Sprintf("Between %s and %s, predicted cashflow is %s with an average of %.2f.",
		series[0].Date, series[len(series)-1].Date, trend, mean)

	return InsightResult{
		Summary:  summary,
		Insights: insights,
		Stats: ForecastStats{
			Trend:   last - first,
			Average: mean,
			Min:     minVal,
			Max:     maxVal,
		},
	}
}

func trendLabel(first, last float64) string {
	switch {
	case last > first:
		return "increasing"
	case last < first:
		return "declining"
	default:
		return "stable"
	}
}

// burnRate is the mean magnitude of the negative days.
func burnRate(series []ForecastPoint) float64 {
	sum := 0.0
	count := 0
	for _, point := range series {
		if point.PredictedCashflow < 0 {
			sum += math.Abs(point.PredictedCashflow)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
