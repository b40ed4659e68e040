// Package categorizer is the HTTP client for the external transaction
// categorizer service. One call classifies one transaction; batch fan-out and
// failure absorption live in the service layer.
package categorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// Request carries the fields the categorizer model was trained on.
type Request struct {
	Reference string  `json:"reference"`
	Remarks   string  `json:"remarks"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

type classifyResponse struct {
	PredictedCategory string `json:"predicted_category"`
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

// Classify returns the predicted category for a single transaction. Any
// transport failure, non-2xx status, or malformed body is an error; callers
// decide whether that fails the batch.
func (c *Client) Classify(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("categorizer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("categorizer returned status %d", resp.StatusCode)
	}

	var decoded classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("categorizer response: %w", err)
	}
	if decoded.PredictedCategory == "" {
		return "", errors.New("categorizer response missing predicted_category")
	}

	return decoded.PredictedCategory, nil
}
