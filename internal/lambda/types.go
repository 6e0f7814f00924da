package lambda

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/growthrule/pacewatch/internal/engine"
	"github.com/growthrule/pacewatch/internal/publish"
	"github.com/growthrule/pacewatch/pkg/types"
)

// PacingRequest is the payload of the pacing Lambda. The revenue report
// arrives as a JSON-encoded string, mirroring how the reporting pipeline
// hands it off.
type PacingRequest struct {
	UserSearchID string `json:"userSearchId"`
	ReportJSON   string `json:"reportJson"`
}

// PacingResponse is the pacing Lambda's reply.
type PacingResponse struct {
	Status string                  `json:"status"`
	Run    *engine.ProcessResponse `json:"run,omitempty"`
}

// PromoteRequest replays the promotion stages for one process date.
type PromoteRequest struct {
	ProcessDate string `json:"processDate"`
}

// PromoteResponse is the promoter Lambda's reply.
type PromoteResponse struct {
	Status string         `json:"status"`
	Result publish.Result `json:"result"`
}

// ResolveProcessDate returns the requested process date, or today's date
// in the configured zone when the request leaves it empty.
func ResolveProcessDate(requested string, now time.Time, loc *time.Location) string {
	if requested != "" {
		return requested
	}
	return now.In(loc).Format(types.ProcessDateLayout)
}

// ParseReport decodes the revenue report rows from their JSON string form.
func ParseReport(reportJSON string) ([]types.RevenueRow, error) {
	if reportJSON == "" {
		return nil, nil
	}
	var rows []types.RevenueRow
	if err := json.Unmarshal([]byte(reportJSON), &rows); err != nil {
		return nil, fmt.Errorf("parsing revenue report: %w", err)
	}
	return rows, nil
}
