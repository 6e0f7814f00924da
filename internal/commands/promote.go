package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/growthrule/pacewatch/internal/config"
	"github.com/growthrule/pacewatch/pkg/types"
)

// NewPromoteCmd creates the promote command.
func NewPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [process-date]",
		Short: "Replay templating and mart promotion for a process date",
		Long: `Re-runs the publishing stages against records already staged in the
interim store. Useful after a partial failure: promotion is idempotent,
records already in the marts are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processDate := ""
			if len(args) == 1 {
				processDate = args[0]
			}
			return runPromote(processDate)
		},
	}
}

func runPromote(processDate string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	if processDate == "" {
		processDate = time.Now().In(loc).Format(types.ProcessDateLayout)
	} else if _, err := time.Parse(types.ProcessDateLayout, processDate); err != nil {
		return fmt.Errorf("invalid process date %q, want YYYY-MM-DD", processDate)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := eng.Promote(ctx, processDate)
	if err != nil {
		return fmt.Errorf("promotion failed: %w", err)
	}

	_, _ = color.New(color.Bold).Printf("Promotion for %s\n", processDate)
	fmt.Printf("  templated:  %d\n", res.Templated)
	fmt.Printf("  published:  %d\n", res.Published)
	fmt.Printf("  duplicates: %d\n", res.PacingDuplicates+res.AlertsDuplicates)
	return nil
}
