package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "divlens",
	Short: "divlens - 배당 수익률 리포트 + 평가 저장소",
	Long: `divlens Unified CLI

Joins each dividend payment with the last close on or before its payment date
and reports the yield. Also serves the evaluation/result store.

Usage:
  go run ./cmd/divlens [command]

Examples:
  go run ./cmd/divlens api
  go run ./cmd/divlens migrate
  go run ./cmd/divlens dividends AAPL MSFT --start 2020-01-01
  go run ./cmd/divlens test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
