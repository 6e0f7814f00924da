// pacing Lambda computes budget-pacing alerts for one campaign search.
// Invoked with the saved search ID and the day's revenue report.
package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	intlambda "github.com/growthrule/pacewatch/internal/lambda"
)

var (
	deps     *intlambda.Deps
	depsOnce sync.Once
	depsErr  error
)

func getDeps() (*intlambda.Deps, error) {
	depsOnce.Do(func() {
		deps, depsErr = intlambda.Init(context.Background())
	})
	return deps, depsErr
}

func handler(ctx context.Context, req intlambda.PacingRequest) (*intlambda.PacingResponse, error) {
	d, err := getDeps()
	if err != nil {
		return nil, err
	}

	rows, err := intlambda.ParseReport(req.ReportJSON)
	if err != nil {
		return nil, err
	}

	run, err := d.Engine.Process(ctx, req.UserSearchID, rows)
	if err != nil {
		d.Logger.Error("pacing run failed", "searchId", req.UserSearchID, "error", err)
		return nil, err
	}

	d.Logger.Info("pacing run complete",
		"processUid", run.ProcessUID,
		"campaign", run.CampaignName,
		"appended", run.Appended,
		"published", run.Publish.Published)
	return &intlambda.PacingResponse{Status: "ok", Run: run}, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	awslambda.Start(handler)
}
