package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fraudgen",
		Short:         "Generate synthetic transaction ledgers and fraud reports",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Int("count", 0, "Number of transactions (default from GEN_COUNT or 500)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed (default from GEN_SEED or 42)")
	rootCmd.PersistentFlags().String("now", "", "Window end as RFC3339 (default current time)")
	rootCmd.PersistentFlags().StringP("format", "f", "json", "Output format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline progress to stderr")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(reportCmd())

	return rootCmd
}
