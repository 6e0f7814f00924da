package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/growthrule/pacewatch/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "pacewatch",
		Short: "Budget-pacing alert engine for media campaigns",
		Long: `Pacewatch compares campaign spend against its flight budget, classifies
the deviation against a fixed rule catalogue and publishes the resulting
alerts to the downstream marts. The run and promote commands mirror the
two Lambda entrypoints for local operation.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewInitCmd(),
		commands.NewRunCmd(),
		commands.NewPromoteCmd(),
		commands.NewStatusCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
