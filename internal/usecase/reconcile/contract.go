package reconcile

import (
	"context"

	"github.com/culturegraph/reconcile/internal/domain/record"
)

// RecordSource defines the storage contract for matching.
type RecordSource interface {
	// AllRecords returns every record of a category in a stable order.
	AllRecords(ctx context.Context, cat record.Category) ([]record.Record, error)

	// RecordByID returns the record with the given identifier.
	RecordByID(ctx context.Context, id string) (record.Record, error)
}
