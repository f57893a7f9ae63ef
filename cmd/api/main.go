// Package main is the entry point for the Voyage API.
// Its sole responsibility is wiring dependencies together and dispatching
// subcommands. No business logic belongs here.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the top-level "voyage" command and registers all
// subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "voyage",
		Short:         "AI trip planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
	)

	return root
}
