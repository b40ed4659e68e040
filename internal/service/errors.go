package service

import "errors"

// ErrInsufficientData is returned before any outbound call when a user has
// too few transactions for the forecasting engine to accept. Recoverable by
// the caller; handlers surface it as a client error.
var ErrInsufficientData = errors.New("insufficient transaction history to forecast")
