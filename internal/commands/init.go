package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/growthrule/pacewatch/internal/alert"
	"github.com/growthrule/pacewatch/internal/config"
	"github.com/growthrule/pacewatch/internal/refdata"
	ddbstore "github.com/growthrule/pacewatch/internal/store/dynamodb"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [project-dir]",
		Short: "Write a starter pacewatch.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir)
		},
	}
}

func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	starter := config.Config{
		Timezone: "America/Montreal",
		DynamoDB: ddbstore.Config{
			TableName: "pacewatch",
			Region:    "us-east-1",
		},
		Snowflake: refdata.Config{
			Account:  "your-account",
			User:     "pacing",
			Database: "ANALYTICS",
			Schema:   "REF",
			Table:    refdata.DefaultTable,
		},
		Directory: config.DirectoryConfig{
			SearchTable: "campaign-searches",
			UserTable:   "users",
		},
		Alerts: []alert.Config{{Type: alert.TypeConsole}},
	}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = color.New(color.Bold).Printf("Wrote %s\n", path)
	fmt.Println("Fill in the Snowflake credentials and table names, then run:")
	fmt.Println("  pacewatch status")
	return nil
}
