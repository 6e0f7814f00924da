// promoter Lambda replays the templating and mart-promotion stages for a
// process date, for recovery after partial failures.
package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

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

func handler(ctx context.Context, req intlambda.PromoteRequest) (*intlambda.PromoteResponse, error) {
	d, err := getDeps()
	if err != nil {
		return nil, err
	}

	// Lambda clocks run UTC; the process date keys on the configured zone.
	processDate := intlambda.ResolveProcessDate(req.ProcessDate, time.Now(), d.Location)

	res, err := d.Engine.Promote(ctx, processDate)
	if err != nil {
		d.Logger.Error("promotion failed", "processDate", processDate, "error", err)
		return nil, err
	}

	d.Logger.Info("promotion complete",
		"processDate", processDate,
		"templated", res.Templated,
		"published", res.Published,
		"duplicates", res.PacingDuplicates+res.AlertsDuplicates)
	return &intlambda.PromoteResponse{Status: "ok", Result: res}, nil
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	awslambda.Start(handler)
}
