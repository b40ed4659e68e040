package transaction

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies. Debit and credit
// are decimal strings; a transaction carries one or the other.
type Transaction struct {
	ID              string  `json:"id" doc:"Transaction UUID"`
	UserID          string  `json:"userID" doc:"Owning user UUID"`
	TransactionDate string  `json:"transactionDate" doc:"RFC3339 transaction date"`
	Debit           *string `json:"debit,omitempty" doc:"Debit amount, absent for credits"`
	Credit          *string `json:"credit,omitempty" doc:"Credit amount, absent for debits"`
	Reference       string  `json:"reference" doc:"Counterparty reference"`
	Remarks         string  `json:"remarks" doc:"Free-form remarks"`
	CreatedAt       string  `json:"createdAt" doc:"RFC3339 ingestion time"`
}
