// Package forecast is the HTTP client for the external cashflow forecasting
// engine. The engine is an opaque numerical service; this client only speaks
// its wire format and classifies its failures.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

var (
	// ErrUnavailable means the engine could not be reached or timed out.
	ErrUnavailable = errors.New("forecast engine unavailable")
	// ErrBadResponse means the engine answered with an error status or a
	// body this client cannot interpret.
	ErrBadResponse = errors.New("forecast engine returned an invalid response")
)

// TransactionPoint is one historical row in the engine's input format.
type TransactionPoint struct {
	TransactionDate string  `json:"transaction_date"`
	Debit           float64 `json:"debit"`
	Credit          float64 `json:"credit"`
}

// Point is one predicted day in the engine's output.
type Point struct {
	Date              string  `json:"date"`
	PredictedCashflow float64 `json:"predicted_cashflow"`
}

type forecastRequest struct {
	Transactions []TransactionPoint `json:"transactions"`
	Days         int                `json:"days"`
}

type forecastResponse struct {
	Forecast []Point `json:"forecast"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Forecast submits the transaction history and returns the predicted series
// for the requested horizon. Errors wrap ErrUnavailable or ErrBadResponse so
// callers can map them without parsing messages.
func (c *Client) Forecast(ctx context.Context, transactions []TransactionPoint, days int) ([]Point, error) {
	body, err := json.Marshal(forecastRequest{Transactions: transactions, Days: days})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forecast", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(decoded.Forecast) == 0 {
		return nil, fmt.Errorf("%w: empty forecast", ErrBadResponse)
	}

	return decoded.Forecast, nil
}
