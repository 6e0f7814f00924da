// Package refdata resolves rule codes to their descriptive metadata in
// the reference catalogue and merges that metadata into alert records.
package refdata

import (
	"context"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Catalog looks up rule metadata for a batch of codes. Codes with no
// configured metadata are simply absent from the result; that is not an
// error.
type Catalog interface {
	Lookup(ctx context.Context, codes []string) ([]types.RuleMetadata, error)
}

// Merge copies catalogue metadata into each record whose rule code has a
// match. Records without a match are dropped: a code with no configured
// metadata is never published.
func Merge(recs []types.AlertRecord, metas []types.RuleMetadata) []types.AlertRecord {
	byCode := make(map[string]types.RuleMetadata, len(metas))
	for _, m := range metas {
		byCode[m.ErrorID] = m
	}

	out := make([]types.AlertRecord, 0, len(recs))
	for _, rec := range recs {
		meta, ok := byCode[rec.ErrorID]
		if !ok {
			continue
		}
		rec.RuleFields = meta.RuleFields
		rec.PlatformValue = meta.PlatformValue
		rec.InputValue = meta.InputValue
		out = append(out, rec)
	}
	return out
}

// Codes extracts the rule codes from a batch of records, deduplicated,
// for a single catalogue lookup.
func Codes(recs []types.AlertRecord) []string {
	seen := make(map[string]struct{}, len(recs))
	codes := make([]string, 0, len(recs))
	for _, rec := range recs {
		if _, ok := seen[rec.ErrorID]; ok {
			continue
		}
		seen[rec.ErrorID] = struct{}{}
		codes = append(codes, rec.ErrorID)
	}
	return codes
}

// Static is an in-memory Catalog keyed by rule code, used in tests and
// CLI dry runs.
type Static map[string]types.RuleMetadata

// Lookup returns the metadata rows for the codes that exist in the map.
func (s Static) Lookup(_ context.Context, codes []string) ([]types.RuleMetadata, error) {
	var out []types.RuleMetadata
	for _, code := range codes {
		if m, ok := s[code]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
