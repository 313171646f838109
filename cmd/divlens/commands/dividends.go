package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/divlens/backend/internal/contracts"
	"github.com/wonny/divlens/backend/pkg/config"
)

// dividendsCmd represents the dividends command
var dividendsCmd = &cobra.Command{
	Use:   "dividends TICKER [TICKER...]",
	Short: "배당 수익률 리포트 (터미널)",
	Long: `Builds the dividend yield report for one or more tickers and prints
the bulk JSON document. Failed tickers are listed under "errors".
No database is needed.

Example:
  go run ./cmd/divlens dividends AAPL
  go run ./cmd/divlens dividends AAPL MSFT KO --start 2020-01-01 --end 2023-12-31
  go run ./cmd/divlens dividends AAPL --table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDividends,
}

var (
	divStart string
	divEnd   string
	divTable bool
)

func init() {
	rootCmd.AddCommand(dividendsCmd)

	dividendsCmd.Flags().StringVar(&divStart, "start", "", "시작일 (YYYY-MM-DD)")
	dividendsCmd.Flags().StringVar(&divEnd, "end", "", "종료일 (YYYY-MM-DD)")
	dividendsCmd.Flags().BoolVar(&divTable, "table", false, "표 형식으로 출력")
}

func runDividends(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithoutDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	window, err := parseWindowFlags(divStart, divEnd)
	if err != nil {
		return err
	}

	pipeline := newPipeline(cfg, log)

	start := time.Now()
	report := pipeline.RunBulk(context.Background(), args, window)

	if divTable {
		printBulkTable(report)
		fmt.Printf("\n(%d ok, %d failed in %.2fs)\n", len(report.Results), len(report.Errors), time.Since(start).Seconds())
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func parseWindowFlags(start, end string) (contracts.DateRange, error) {
	var window contracts.DateRange
	if start != "" {
		d, err := contracts.ParseDate(start)
		if err != nil {
			return window, fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", start)
		}
		window.Start = &d
	}
	if end != "" {
		d, err := contracts.ParseDate(end)
		if err != nil {
			return window, fmt.Errorf("invalid --end %q: expected YYYY-MM-DD", end)
		}
		window.End = &d
	}
	return window, nil
}

func printBulkTable(report *contracts.BulkReport) {
	widths := []int{12, 8, 4, 12, 12, 10}
	for _, r := range report.Results {
		PrintDoubleSeparator()
		fmt.Printf("  %s (%s) - %d dividends\n", r.Ticker, r.Currency, len(r.Records))
		PrintSeparator()
		PrintTableHeader([]string{"Date", "Ticker", "Cur", "Dividend", "Price", "Yield %"}, widths)
		for _, rec := range r.Records {
			PrintTableRow([]string{
				rec.PaymentDate.Format(contracts.DateLayout),
				rec.Ticker,
				rec.Currency,
				rec.Dividend.String(),
				nullString(rec.PricePerShare.Valid, rec.PricePerShare.Decimal.String()),
				nullString(rec.DividendYield.Valid, rec.DividendYield.Decimal.String()),
			}, widths)
		}
	}

	if len(report.Errors) > 0 {
		items := make([]string, 0, len(report.Errors))
		for _, e := range report.Errors {
			items = append(items, fmt.Sprintf("%s: %s", e.Ticker, e.Detail))
		}
		PrintWarning(fmt.Sprintf("%d ticker(s) failed", len(report.Errors)))
		PrintList(items)
	}
}

func nullString(valid bool, s string) string {
	if !valid {
		return "-"
	}
	return s
}
