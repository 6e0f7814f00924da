// Package directory resolves campaign searches and their owning users
// from the application's read-only reference tables.
package directory

import (
	"context"
	"errors"

	"github.com/growthrule/pacewatch/pkg/types"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("directory: not found")

// Directory looks up the external inputs of a pacing run. A missing
// campaign search or user aborts the run, so both lookups distinguish
// ErrNotFound from transport failures.
type Directory interface {
	LookupCampaignSearch(ctx context.Context, searchID string) (types.CampaignSearch, error)
	LookupUser(ctx context.Context, userID string) (types.User, error)
}
