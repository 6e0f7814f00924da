// Package publish promotes interim alert records into the downstream
// marts: a templating pass substitutes computed deltas into the rule
// messages, then matching records are copied into the pacing alerts mart
// and the alerts datamart, deduplicated on their natural key.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/growthrule/pacewatch/internal/store"
	"github.com/growthrule/pacewatch/internal/telemetry"
	"github.com/growthrule/pacewatch/pkg/types"
)

// promoteConcurrency caps parallel mart writes per invocation.
const promoteConcurrency = 8

// Publisher runs the templating and promotion stages against a Store.
type Publisher struct {
	store   store.Store
	logger  *slog.Logger
	alertFn func(types.OpsAlert)
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// WithAlertFunc sets the operational alert callback.
func WithAlertFunc(fn func(types.OpsAlert)) Option {
	return func(p *Publisher) { p.alertFn = fn }
}

// New creates a Publisher over the given store.
func New(st store.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:   st,
		logger:  slog.Default(),
		alertFn: func(types.OpsAlert) {},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Result summarizes one Finalize invocation. Failures are non-fatal:
// they are logged and dispatched as operational alerts, and surface here
// as messages rather than failing the run.
type Result struct {
	Templated        int      `json:"templated"`
	Published        int      `json:"published"`
	PacingDuplicates int      `json:"pacingDuplicates"`
	AlertsDuplicates int      `json:"alertsDuplicates"`
	Failures         int      `json:"failures"`
	Errors           []string `json:"errors,omitempty"`
}

// Finalize runs the templating pass over the whole interim collection,
// then promotes the records matching the given process date and platform
// into both marts. Templating scans every interim document, not just the
// current run's: messages left untemplated by earlier failed runs get
// repaired on the next invocation.
func (p *Publisher) Finalize(ctx context.Context, processDate, platform string) (Result, error) {
	var res Result

	p.templateMessages(ctx, &res)

	recs, err := p.store.QueryInterim(ctx, processDate, platform, types.StatusNew)
	if err != nil {
		return res, fmt.Errorf("querying records for promotion: %w", err)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(promoteConcurrency)
	for _, rec := range recs {
		g.Go(func() error {
			outcome := p.promote(gctx, rec)
			mu.Lock()
			res.Published += outcome.published
			res.PacingDuplicates += outcome.pacingDup
			res.AlertsDuplicates += outcome.alertsDup
			res.Failures += outcome.failures
			res.Errors = append(res.Errors, outcome.errs...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	telemetry.RecordPublished(ctx, "pacing", res.Published)
	return res, nil
}

// templateMessages substitutes each record's delta value into its rule
// message. Records with a zero delta keep the raw template. Failed
// updates leave the raw message behind; the next invocation's
// collection-wide scan picks them up again.
func (p *Publisher) templateMessages(ctx context.Context, res *Result) {
	recs, err := p.store.ListInterim(ctx)
	if err != nil {
		res.Failures++
		res.Errors = append(res.Errors, fmt.Sprintf("listing interim records: %v", err))
		p.logger.Error("listing interim records failed", "error", err)
		return
	}

	for _, rec := range recs {
		if rec.DeltaValue == 0 {
			continue
		}
		if !strings.Contains(rec.ErrorRuleMessage, types.PlaceholderToken) {
			continue
		}
		msg := strings.ReplaceAll(rec.ErrorRuleMessage, types.PlaceholderToken, FormatDelta(rec.DeltaValue))
		if err := p.store.UpdateInterimMessage(ctx, rec.DocID, msg); err != nil {
			res.Failures++
			res.Errors = append(res.Errors, fmt.Sprintf("templating record %s: %v", rec.DocID, err))
			p.opsError(rec, fmt.Sprintf("templating record %s failed: %v", rec.DocID, err))
			continue
		}
		res.Templated++
	}
}

type promoteOutcome struct {
	published int
	pacingDup int
	alertsDup int
	failures  int
	errs      []string
}

func (p *Publisher) promote(ctx context.Context, rec types.AlertRecord) promoteOutcome {
	var out promoteOutcome
	key := rec.NaturalKey()

	inserted, err := p.store.InsertPacingMart(ctx, rec)
	switch {
	case err != nil:
		out.failures++
		out.errs = append(out.errs, fmt.Sprintf("pacing mart %s: %v", key, err))
		p.opsError(rec, fmt.Sprintf("pacing mart insert failed for %s: %v", key, err))
	case !inserted:
		out.pacingDup++
		telemetry.RecordDuplicate(ctx, "pacing")
		p.logger.Warn("pacing mart record already published", "key", key)
	default:
		out.published++
	}

	inserted, err = p.store.InsertAlertsMart(ctx, ToMartRecord(rec))
	switch {
	case err != nil:
		out.failures++
		out.errs = append(out.errs, fmt.Sprintf("alerts mart %s: %v", key, err))
		p.opsError(rec, fmt.Sprintf("alerts mart insert failed for %s: %v", key, err))
	case !inserted:
		out.alertsDup++
		telemetry.RecordDuplicate(ctx, "alerts")
		p.logger.Warn("alerts mart record already published", "key", key)
	}

	return out
}

func (p *Publisher) opsError(rec types.AlertRecord, msg string) {
	p.logger.Error(msg, "processUid", rec.ProcessUID)
	p.alertFn(types.OpsAlert{
		Level:      types.OpsAlertError,
		ProcessUID: rec.ProcessUID,
		Stage:      "promote",
		Message:    msg,
		Timestamp:  time.Now(),
	})
}
