package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
)

// GetClassifiedInput is the Huma input for fetching classified transactions.
type GetClassifiedInput struct {
	UserID string `path:"userID" doc:"User UUID"`
}

// ClassifiedTransaction is the API model for a transaction with its
// predicted category. Debit and credit are decimal strings; a transaction
// carries one or the other.
type ClassifiedTransaction struct {
	ID                   string  `json:"id" doc:"Transaction UUID"`
	TransactionDate      string  `json:"transactionDate" doc:"RFC3339 transaction date"`
	Debit                *string `json:"debit,omitempty" doc:"Debit amount, absent for credits"`
	Credit               *string `json:"credit,omitempty" doc:"Credit amount, absent for debits"`
	Reference            string  `json:"reference" doc:"Counterparty reference"`
	Remarks              string  `json:"remarks" doc:"Free-form remarks"`
	Category             string  `json:"category" doc:"Predicted category, UNCATEGORIZED when classification failed"`
	ClassificationFailed bool    `json:"classificationFailed" doc:"True when the categorizer call for this row failed"`
}

// GetClassifiedResponseBody is the response body for classified transactions.
type GetClassifiedResponseBody struct {
	UserID       string                  `json:"userID" doc:"User UUID the batch belongs to"`
	Transactions []ClassifiedTransaction `json:"transactions" doc:"Full history with predicted categories"`
}

// GetClassifiedOutput is the Huma output for classified transactions.
type GetClassifiedOutput struct {
	Body GetClassifiedResponseBody
}

// transactionClassifier is the interface for classifying a user's history.
type transactionClassifier interface {
	ClassifiedTransactions(ctx context.Context, userID uuid.UUID) ([]service.ClassifiedTransaction, error)
}

// GetClassifiedHandler handles GET /v1/analytics/{userID}/classified.
type GetClassifiedHandler struct {
	Analytics transactionClassifier
}

// NewGetClassifiedHandler creates a new GetClassifiedHandler.
func NewGetClassifiedHandler(svc transactionClassifier) *GetClassifiedHandler {
	return &GetClassifiedHandler{Analytics: svc}
}

// Register registers the classified transactions endpoint with the Huma API.
func (h *GetClassifiedHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-classified-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/{userID}/classified",
		Summary:     "Get classified transactions",
		Description: "Returns the user's transaction history with a predicted category per transaction.",
		Tags:        []string{"Analytics"},
	}, h.handle)
}

func (h *GetClassifiedHandler) handle(ctx context.Context, input *GetClassifiedInput) (*GetClassifiedOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parseUserID(input.UserID)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("userID", userID.String())
		stopTimer = logData.AddTiming("classifyMs")
	}
	classified, err := h.Analytics.ClassifiedTransactions(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapServiceError("classify transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(classified))
	}

	resp := GetClassifiedResponseBody{
		UserID:       userID.String(),
		Transactions: make([]ClassifiedTransaction, len(classified)),
	}
	for i, row := range classified {
		apiRow := ClassifiedTransaction{
			ID:                   row.ID.String(),
			TransactionDate:      row.TransactionDate.Format(time.RFC3339),
			Reference:            row.Reference,
			Remarks:              row.Remarks,
			Category:             row.Category,
			ClassificationFailed: row.ClassificationFailed,
		}
		if row.Debit.Valid {
			debit := row.Debit.Decimal.String()
			apiRow.Debit = &debit
		}
		if row.Credit.Valid {
			credit := row.Credit.Decimal.String()
			apiRow.Credit = &credit
		}
		resp.Transactions[i] = apiRow
	}

	return &GetClassifiedOutput{Body: resp}, nil
}
