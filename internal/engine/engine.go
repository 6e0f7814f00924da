// Package engine orchestrates one pacing run: resolve the campaign
// search, aggregate the revenue report, compute metrics, classify, enrich
// from the reference catalogue, stage the alert records and promote them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/growthrule/pacewatch/internal/directory"
	"github.com/growthrule/pacewatch/internal/pacing"
	"github.com/growthrule/pacewatch/internal/publish"
	"github.com/growthrule/pacewatch/internal/refdata"
	"github.com/growthrule/pacewatch/internal/report"
	"github.com/growthrule/pacewatch/internal/store"
	"github.com/growthrule/pacewatch/internal/telemetry"
	"github.com/growthrule/pacewatch/internal/window"
	"github.com/growthrule/pacewatch/pkg/types"
)

var tracer = otel.Tracer("pacewatch")

// Engine runs the pacing computation end to end.
type Engine struct {
	dir       directory.Directory
	catalog   refdata.Catalog
	store     store.Store
	publisher *publish.Publisher
	loc       *time.Location
	platform  string
	logger    *slog.Logger
	alertFn   func(types.OpsAlert)
	clock     func() time.Time
	newUID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithAlertFunc sets the operational alert callback.
func WithAlertFunc(fn func(types.OpsAlert)) Option {
	return func(e *Engine) { e.alertFn = fn }
}

// WithPlatform overrides the platform tag stamped on produced records.
func WithPlatform(platform string) Option {
	return func(e *Engine) { e.platform = platform }
}

// WithClock sets the time source (useful for testing).
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.clock = fn }
}

// WithUIDFunc sets the process UID generator (useful for testing).
func WithUIDFunc(fn func() string) Option {
	return func(e *Engine) { e.newUID = fn }
}

// New creates an Engine.
func New(dir directory.Directory, catalog refdata.Catalog, st store.Store, pub *publish.Publisher, loc *time.Location, opts ...Option) *Engine {
	e := &Engine{
		dir:       dir,
		catalog:   catalog,
		store:     st,
		publisher: pub,
		loc:       loc,
		platform:  types.PlatformDV360,
		logger:    slog.Default(),
		alertFn:   func(types.OpsAlert) {},
		clock:     time.Now,
		newUID:    func() string { return ulid.Make().String() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ProcessResponse summarizes one pacing run.
type ProcessResponse struct {
	ProcessUID   string         `json:"processUid"`
	ProcessDate  string         `json:"processDate"`
	CampaignName string         `json:"campaignName"`
	Appended     int            `json:"appended"`
	Publish      publish.Result `json:"publish"`
}

// Process runs one pacing invocation for the given campaign search over
// the supplied revenue report rows.
func (e *Engine) Process(ctx context.Context, searchID string, rows []types.RevenueRow) (*ProcessResponse, error) {
	ctx, span := tracer.Start(ctx, "pacing.run",
		trace.WithAttributes(attribute.String("searchId", searchID)))
	defer span.End()

	search, err := e.dir.LookupCampaignSearch(ctx, searchID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("campaign search %s not found", searchID)
		}
		return nil, err
	}
	user, err := e.dir.LookupUser(ctx, search.UserID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("user %s not found for campaign search %s", search.UserID, searchID)
		}
		return nil, err
	}

	now := e.clock()
	w, err := window.Compute(now, search.StartDate, search.EndDate, e.loc)
	if err != nil {
		return nil, fmt.Errorf("computing flight window: %w", err)
	}

	agg := report.Aggregate(rows, w, e.loc)
	if agg.Skipped > 0 {
		e.logger.Warn("report rows excluded from aggregation",
			"skipped", agg.Skipped, "campaignSearch", searchID)
	}
	metrics := pacing.Build(w, agg, search.Budget)

	uid := e.newUID()
	base := e.metricsRecord(uid, now, search, user, metrics)
	e.logger.Info("pacing metrics computed",
		"processUid", uid,
		"campaign", search.CampaignName,
		"percBudgetSpent", metrics.PercBudgetSpent,
		"percDaysPassed", metrics.PercDaysPassed)

	appended, err := e.stageAlerts(ctx, base, metrics)
	if err != nil {
		return nil, err
	}
	telemetry.RecordAppended(ctx, appended)

	pubRes, err := e.publisher.Finalize(ctx, base.ProcessDate, e.platform)
	if err != nil {
		return nil, fmt.Errorf("publishing pacing alerts: %w", err)
	}

	telemetry.RecordRun(ctx, e.platform)
	return &ProcessResponse{
		ProcessUID:   uid,
		ProcessDate:  base.ProcessDate,
		CampaignName: search.CampaignName,
		Appended:     appended,
		Publish:      pubRes,
	}, nil
}

// Promote reruns the templating and promotion stages without recomputing
// metrics, for operational replay of a process date.
func (e *Engine) Promote(ctx context.Context, processDate string) (publish.Result, error) {
	return e.publisher.Finalize(ctx, processDate, e.platform)
}

func (e *Engine) metricsRecord(uid string, now time.Time, search types.CampaignSearch, user types.User, m pacing.Metrics) types.MetricsRecord {
	ids := make([]string, 0, len(search.Campaigns))
	for _, ref := range search.Campaigns {
		ids = append(ids, ref.CampaignID)
	}

	return types.MetricsRecord{
		ProcessUID:        uid,
		ProcessDate:       now.In(e.loc).Format(types.ProcessDateLayout),
		ProcessStatus:     types.StatusNew,
		CreationTimestamp: now,
		CreatedBy:         user.Email,
		ClientName:        search.PartnerName,
		CampaignName:      search.CampaignName,
		StartDate:         search.StartDate,
		EndDate:           search.EndDate,
		Platform:          e.platform,
		Budget:            search.Budget,
		CampaignID:        strings.Join(ids, ";"),

		PercBudgetSpent:             m.PercBudgetSpent,
		PercDaysPassed:              m.PercDaysPassed,
		CampaignCost:                m.CampaignCost,
		YesterdayCampaignCost:       m.YesterdayCampaignCost,
		SevenDayAvgCampaignCost:     m.SevenDayAvgCampaignCost,
		YesterdaySpent:              m.YesterdaySpent,
		EstimatedCost:               m.EstimatedCost,
		DailyEstimatedCost:          m.DailyEstimatedCost,
		YesterdayDailyEstimatedCost: m.YesterdayDailyEstimatedCost,
	}
}

// stageAlerts runs the four classifiers, enriches each result from the
// reference catalogue and appends the surviving records to the interim
// store. Classifications whose code has no catalogue row are dropped
// without error.
func (e *Engine) stageAlerts(ctx context.Context, base types.MetricsRecord, m pacing.Metrics) (int, error) {
	classifications := []pacing.Classification{
		pacing.ClassifyBudget(m),
		pacing.ClassifyCampaignCost(m),
		pacing.ClassifyYesterdaySpend(m),
		pacing.ClassifySevenDayAverage(m),
	}

	appended := make([]int, len(classifications))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range classifications {
		g.Go(func() error {
			n, err := e.stageOne(gctx, base, c)
			appended[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range appended {
		total += n
	}
	return total, nil
}

func (e *Engine) stageOne(ctx context.Context, base types.MetricsRecord, c pacing.Classification) (int, error) {
	recs := []types.AlertRecord{{
		MetricsRecord: base,
		ErrorID:       c.Code,
		DeltaValue:    c.Delta,
	}}

	metas, err := e.catalog.Lookup(ctx, refdata.Codes(recs))
	if err != nil {
		return 0, fmt.Errorf("looking up rule %s: %w", c.Code, err)
	}
	enriched := refdata.Merge(recs, metas)

	for _, rec := range enriched {
		if _, err := e.store.AppendInterim(ctx, rec); err != nil {
			return 0, fmt.Errorf("staging alert %s: %w", rec.ErrorID, err)
		}
	}
	return len(enriched), nil
}
