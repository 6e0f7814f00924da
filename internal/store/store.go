// Package store defines the document-store boundary for interim alert
// records and the two downstream marts.
package store

import (
	"context"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Store is the append-only document store used by the publisher. The
// interim collection stages freshly computed alert records; the two mart
// collections hold the published, deduplicated history. Mart inserts are
// conditional on the record's natural key: they report false instead of
// writing a duplicate.
//
// Create-after-write is visible to later queries in the same process, but
// no strict read-after-write guarantee is assumed across stages.
type Store interface {
	// AppendInterim writes a new interim document and returns its ID.
	AppendInterim(ctx context.Context, rec types.AlertRecord) (string, error)

	// ListInterim returns every interim document. The templating pass
	// deliberately scans the whole collection, not just one run's records.
	ListInterim(ctx context.Context) ([]types.AlertRecord, error)

	// QueryInterim returns the interim documents matching the promotion
	// predicate.
	QueryInterim(ctx context.Context, processDate, platform, status string) ([]types.AlertRecord, error)

	// UpdateInterimMessage persists a substituted rule message in place.
	UpdateInterimMessage(ctx context.Context, docID, message string) error

	// InsertPacingMart conditionally copies a record into the pacing
	// alerts mart. Returns false when the natural key already exists.
	InsertPacingMart(ctx context.Context, rec types.AlertRecord) (bool, error)

	// InsertAlertsMart conditionally copies a record into the alerts
	// datamart. Returns false when the natural key already exists.
	InsertAlertsMart(ctx context.Context, rec types.AlertsMartRecord) (bool, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error
}
