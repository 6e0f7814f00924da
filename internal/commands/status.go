package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/growthrule/pacewatch/internal/config"
	"github.com/growthrule/pacewatch/internal/refdata"
	ddbstore "github.com/growthrule/pacewatch/internal/store/dynamodb"
)

const statusTimeout = 15 * time.Second

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the document store and the reference warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	failed := false

	st, err := ddbstore.New(cfg.DynamoDB)
	if err == nil {
		err = st.Ping(ctx)
	}
	printCheck("document store", err)
	failed = failed || err != nil

	catalog, err := refdata.NewWarehouse(cfg.Snowflake)
	if err == nil {
		defer catalog.Close()
		err = catalog.Ping(ctx)
	}
	printCheck("reference warehouse", err)
	failed = failed || err != nil

	if failed {
		return fmt.Errorf("one or more checks failed")
	}
	return nil
}

func printCheck(name string, err error) {
	if err != nil {
		fmt.Printf("%s %s: %v\n", color.RedString("✗"), name, err)
		return
	}
	fmt.Printf("%s %s\n", color.GreenString("✓"), name)
}
