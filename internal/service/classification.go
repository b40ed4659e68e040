package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/analytics-server/internal/storage/sqlconfig"
	"github.com/carson-networks/analytics-server/internal/upstream/categorizer"
)

const (
	// CategoryUncategorized is the sentinel category for rows whose
	// categorizer call failed.
	CategoryUncategorized = "UNCATEGORIZED"

	// classifyFanOut bounds concurrent categorizer calls per batch.
	classifyFanOut = 8
)

// categorizerClient is the narrow view of the external categorizer.
type categorizerClient interface {
	Classify(ctx context.Context, req categorizer.Request) (string, error)
}

// classifyAll fans one categorizer call out per transaction and joins after
// every call has settled. A failed call never fails the batch: the row keeps
// the sentinel category and a failure flag. Result order matches input order.
func classifyAll(ctx context.Context, client categorizerClient, rows []*sqlconfig.Transaction) []ClassifiedTransaction {
	results := make([]ClassifiedTransaction, len(rows))

	jobs := make(chan int)
	wg := sync.WaitGroup{}

	workers := classifyFanOut
	if len(rows) < workers {
		workers = len(rows)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = classifyOne(ctx, client, rows[i])
			}
		}()
	}

	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, result := range results {
		if result.ClassificationFailed {
			failed++
		}
	}
	if failed > 0 {
		logrus.WithFields(logrus.Fields{
			"batchSize": len(rows),
			"failed":    failed,
		}).Warn("Classification.classifyAll.partial")
	}

	return results
}

func classifyOne(ctx context.Context, client categorizerClient, row *sqlconfig.Transaction) ClassifiedTransaction {
	result := ClassifiedTransaction{
		Transaction: transactionFromStorage(row),
		Category:    CategoryUncategorized,
	}

	category, err := client.Classify(ctx, categorizer.Request{
		Reference: row.Reference,
		Remarks:   row.Remarks,
		Debit:     nullDecimalFloat(row.Debit),
		Credit:    nullDecimalFloat(row.Credit),
	})
	if err != nil {
		result.ClassificationFailed = true
		return result
	}

	result.Category = category
	return result
}
