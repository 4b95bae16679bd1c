package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sizectl",
		Short:         "Operator tools for the size recommendation engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRecommendCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newTokenCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
