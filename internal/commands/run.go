package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/growthrule/pacewatch/internal/config"
)

const runTimeout = 5 * time.Minute

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "run [search-id]",
		Short: "Run a pacing evaluation for one campaign search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPacing(args[0], reportPath)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Path to the revenue report JSON file")
	return cmd
}

func runPacing(searchID, reportPath string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rows, err := loadReport(reportPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	eng, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := eng.Process(ctx, searchID, rows)
	if err != nil {
		return fmt.Errorf("pacing run failed: %w", err)
	}

	bold := color.New(color.Bold)
	_, _ = bold.Printf("Run %s (%s)\n", resp.ProcessUID, resp.CampaignName)
	fmt.Printf("  process date:  %s\n", resp.ProcessDate)
	fmt.Printf("  staged:        %d\n", resp.Appended)
	fmt.Printf("  templated:     %d\n", resp.Publish.Templated)
	fmt.Printf("  published:     %d\n", resp.Publish.Published)
	if dups := resp.Publish.PacingDuplicates + resp.Publish.AlertsDuplicates; dups > 0 {
		fmt.Printf("  %s    %d\n", color.YellowString("duplicates:"), dups)
	}
	return nil
}
