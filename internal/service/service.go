package service

import (
	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Analytics   *AnalyticsService
}

// NewService creates a new Service with the given storage, cache, and
// upstream clients.
func NewService(store *storage.Storage, cacheStore *cache.Store, cat categorizerClient, fc forecastClient) *Service {
	return &Service{
		Transaction: NewTransactionService(store),
		Analytics:   NewAnalyticsService(store, cacheStore, cat, fc),
	}
}
