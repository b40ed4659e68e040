package analytics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
)

// GetCreditScoreInput is the Huma input for fetching a credit score.
type GetCreditScoreInput struct {
	UserID string `path:"userID" doc:"User UUID"`
	Days   int    `query:"days" default:"30" minimum:"1" maximum:"365" doc:"Forecast horizon in days"`
}

// GetCreditScoreResponseBody is the response body for fetching a credit score.
type GetCreditScoreResponseBody struct {
	UserID  string   `json:"userID" doc:"User UUID the score belongs to"`
	Score   int      `json:"score" minimum:"0" maximum:"100" doc:"Rule-based score in [0, 100]"`
	Factors []string `json:"factors" doc:"Factors that produced the score"`
}

// GetCreditScoreOutput is the Huma output for fetching a credit score.
type GetCreditScoreOutput struct {
	Body GetCreditScoreResponseBody
}

// creditScorer is the interface for computing credit scores.
type creditScorer interface {
	CreditScore(ctx context.Context, userID uuid.UUID, horizonDays int) (*service.CreditScoreResult, error)
}

// GetCreditScoreHandler handles GET /v1/analytics/{userID}/credit-score.
type GetCreditScoreHandler struct {
	Analytics creditScorer
}

// NewGetCreditScoreHandler creates a new GetCreditScoreHandler.
func NewGetCreditScoreHandler(svc creditScorer) *GetCreditScoreHandler {
	return &GetCreditScoreHandler{Analytics: svc}
}

// Register registers the credit score endpoint with the Huma API.
func (h *GetCreditScoreHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-credit-score",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/{userID}/credit-score",
		Summary:     "Get credit score",
		Description: "Returns the rule-based credit score derived from recent history and the cashflow forecast.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *GetCreditScoreHandler) handle(ctx context.Context, input *GetCreditScoreInput) (*GetCreditScoreOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("userID", userID.String())
		stopTimer = logData.AddTiming("creditScoreMs")
	}
	result, err := h.Analytics.CreditScore(ctx, userID, input.Days)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError("compute credit score", err)
	}

	if logData != nil {
		logData.AddData("creditScore", result.Score)
	}

	return &GetCreditScoreOutput{Body: GetCreditScoreResponseBody{
		UserID:  userID.String(),
		Score:   result.Score,
		Factors: result.Factors,
	}}, nil
}
