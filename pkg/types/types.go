// Package types defines the public domain types for the Pacewatch
// budget-pacing alert engine.
package types

import "time"

// PlatformDV360 is the platform tag stamped on every record this engine
// produces. Promotion only considers interim rows carrying this tag.
const PlatformDV360 = "DV360"

// StatusNew marks a freshly written interim record that has not been
// promoted to the downstream marts yet.
const StatusNew = "New"

// PlaceholderToken is the token inside rule message templates that gets
// substituted with the record's delta value during the templating pass.
const PlaceholderToken = "X"

// DateLayout is the calendar-date format used by campaign searches and
// revenue report rows. No time component; the timezone is implicit.
const DateLayout = "2006/01/02"

// ProcessDateLayout is the format of the ProcessDate promotion key.
const ProcessDateLayout = "2006-01-02"

// CampaignSearch is a saved campaign search: the budget, flight dates and
// identity of one monitored campaign. Read-only external input.
type CampaignSearch struct {
	ID           string        `json:"id" dynamodbav:"id"`
	UserID       string        `json:"userId" dynamodbav:"userId"`
	CampaignName string        `json:"campaignName" dynamodbav:"campaignName"`
	PartnerName  string        `json:"partnerName" dynamodbav:"partnerName"`
	Budget       float64       `json:"budget" dynamodbav:"budget"`
	StartDate    string        `json:"startDate" dynamodbav:"startDate"` // YYYY/MM/DD
	EndDate      string        `json:"endDate" dynamodbav:"endDate"`    // YYYY/MM/DD
	Campaigns    []CampaignRef `json:"campaignId" dynamodbav:"campaignId"`
}

// CampaignRef associates a saved search with one platform campaign ID.
type CampaignRef struct {
	CampaignID string `json:"campaignId" dynamodbav:"campaignId"`
}

// User identifies the owner of a campaign search.
type User struct {
	ID    string `json:"id" dynamodbav:"id"`
	Email string `json:"email" dynamodbav:"email"`
}

// RevenueRow is one line of the daily revenue report. Revenue stays a raw
// string: rows with a non-numeric value are excluded from aggregation
// rather than coerced to zero.
type RevenueRow struct {
	Date    string `json:"Date"`
	Revenue string `json:"Revenue (Adv Currency)"`
}

// MetricsRecord holds the campaign identity plus every computed pacing
// metric for one invocation. Exactly one is built per invocation; its
// ProcessUID correlates all alert records emitted from that run.
type MetricsRecord struct {
	ProcessUID        string    `json:"ProcessUID" dynamodbav:"ProcessUID"`
	ProcessDate       string    `json:"ProcessDate" dynamodbav:"ProcessDate"`
	ProcessStatus     string    `json:"ProcessStatus" dynamodbav:"ProcessStatus"`
	CreationTimestamp time.Time `json:"CreationTimestamp" dynamodbav:"CreationTimestamp"`
	CreatedBy         string    `json:"CreatedBy" dynamodbav:"CreatedBy"`
	ClientName        string    `json:"ClientName" dynamodbav:"ClientName"`
	CampaignName      string    `json:"CampaignName" dynamodbav:"CampaignName"`
	StartDate         string    `json:"StartDate" dynamodbav:"StartDate"`
	EndDate           string    `json:"EndDate" dynamodbav:"EndDate"`
	Platform          string    `json:"Platform" dynamodbav:"Platform"`
	Budget            float64   `json:"Budget" dynamodbav:"Budget"`
	CampaignID        string    `json:"CampaignID" dynamodbav:"CampaignID"`
	AdsetID           string    `json:"AdsetID" dynamodbav:"AdsetID"`

	PercBudgetSpent             float64 `json:"perc_budget_spent" dynamodbav:"perc_budget_spent"`
	PercDaysPassed              float64 `json:"perc_days_passed" dynamodbav:"perc_days_passed"`
	CampaignCost                float64 `json:"campaign_cost" dynamodbav:"campaign_cost"`
	YesterdayCampaignCost       float64 `json:"yesterday_campaign_cost" dynamodbav:"yesterday_campaign_cost"`
	SevenDayAvgCampaignCost     float64 `json:"sevdays_average_campaign_cost" dynamodbav:"sevdays_average_campaign_cost"`
	YesterdaySpent              float64 `json:"yesterday_spent" dynamodbav:"yesterday_spent"`
	EstimatedCost               float64 `json:"estimated_cost" dynamodbav:"estimated_cost"`
	DailyEstimatedCost          float64 `json:"daily_estimated_cost" dynamodbav:"daily_estimated_cost"`
	YesterdayDailyEstimatedCost float64 `json:"yesterday_daily_estimated_cost" dynamodbav:"yesterday_daily_estimated_cost"`
}

// RuleFields is the descriptive metadata merged into an alert record from
// the reference catalogue. Field names mirror the warehouse columns.
type RuleFields struct {
	ErrorPlatform         string  `json:"error_platform" dynamodbav:"error_platform"`
	ErrorPlatformLevel    string  `json:"error_platform_level" dynamodbav:"error_platform_level"`
	ErrorPillar           string  `json:"error_pillar" dynamodbav:"error_pillar"`
	ErrorPillarType       string  `json:"error_pillar_type" dynamodbav:"error_pillar_type"`
	ErrorMetric           string  `json:"error_metric" dynamodbav:"error_metric"`
	ErrorMetricDefinition string  `json:"error_metric_definition" dynamodbav:"error_metric_definition"`
	ErrorMetricCategory   string  `json:"error_metric_category" dynamodbav:"error_metric_category"`
	ErrorRule             string  `json:"error_rule" dynamodbav:"error_rule"`
	ErrorRuleTimeframe    string  `json:"error_rule_timeframe" dynamodbav:"error_rule_timeframe"`
	ErrorRuleStatus       string  `json:"error_rule_status" dynamodbav:"error_rule_status"`
	ErrorRuleMessage      string  `json:"error_rule_message" dynamodbav:"error_rule_message"`
	ErrorRuleScore        float64 `json:"error_rule_score" dynamodbav:"error_rule_score"`
}

// RuleMetadata is one row of the reference catalogue, keyed by rule code.
type RuleMetadata struct {
	ErrorID string `json:"error_id" dynamodbav:"error_id"`
	RuleFields
	PlatformValue string `json:"platform_value" dynamodbav:"platform_value"`
	InputValue    string `json:"input_value" dynamodbav:"input_value"`
}

// AlertRecord is the output of one classifier invocation: the metrics
// snapshot plus the rule code, deviation magnitude and, after enrichment,
// the catalogue metadata. It is the document written to the interim store.
type AlertRecord struct {
	MetricsRecord
	ErrorID    string  `json:"error_ID" dynamodbav:"error_ID"`
	DeltaValue float64 `json:"delta_value" dynamodbav:"delta_value"`
	RuleFields
	PlatformValue string `json:"platform_value" dynamodbav:"platform_value"`
	InputValue    string `json:"input_value" dynamodbav:"input_value"`

	// DocID is the interim document ID, assigned by the store on append.
	DocID string `json:"-" dynamodbav:"-"`
}

// AlertsMartRecord is the shape written to the alerts datamart: the two
// catalogue value fields are coerced to numbers, the delta is stringified
// and the record is made visible.
type AlertsMartRecord struct {
	MetricsRecord
	ErrorID    string `json:"error_ID" dynamodbav:"error_ID"`
	DeltaValue string `json:"delta_value" dynamodbav:"delta_value"`
	RuleFields
	PlatformValue   float64 `json:"platform_value" dynamodbav:"platform_value"`
	InputValue      float64 `json:"input_value" dynamodbav:"input_value"`
	AlertVisibility bool    `json:"AlertVisibility" dynamodbav:"AlertVisibility"`
}

// NaturalKey is the deduplication key for mart promotion. A record is
// published to a mart at most once per key.
func (m MetricsRecord) NaturalKey() string {
	return m.ProcessUID + "#" + m.ProcessDate + "#" + m.Platform
}

// OpsAlertLevel grades operational alerts raised by the publisher.
type OpsAlertLevel string

const (
	OpsAlertError   OpsAlertLevel = "error"
	OpsAlertWarning OpsAlertLevel = "warning"
	OpsAlertInfo    OpsAlertLevel = "info"
)

// OpsAlert is an operational notification about the engine itself, such as
// a downstream write failure. Unrelated to campaign pacing alerts.
type OpsAlert struct {
	Level      OpsAlertLevel `json:"level"`
	ProcessUID string        `json:"processUid,omitempty"`
	Stage      string        `json:"stage,omitempty"`
	Message    string        `json:"message"`
	Timestamp  time.Time     `json:"timestamp"`
}
