package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0shark/markettower/internal/core"
)

var quoteJSON bool

var quoteCmd = &cobra.Command{
	Use:   "quote [ticker]",
	Short: "Print the current quote for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "print the raw quote as JSON")

	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	d, err := bootstrap(false)
	if err != nil {
		return err
	}
	defer d.log.Sync()

	q, err := d.service.GetQuote(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if quoteJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}

	name := q.LongName
	if name == "" {
		name = q.ShortName
	}

	fmt.Printf("=== %s ===\n", q.Symbol)
	if name != "" {
		fmt.Printf("Name:     %s\n", name)
	}
	fmt.Printf("Exchange: %s\n", q.DisplayExchange())
	fmt.Printf("Price:    %s %s\n", price(q.RegularMarketPrice), q.Currency)
	if q.RegularMarketChange != nil && q.RegularMarketChangePercent != nil {
		fmt.Printf("Change:   %+.2f (%+.2f%%)\n", *q.RegularMarketChange, *q.RegularMarketChangePercent)
	}
	fmt.Printf("Day:      %s - %s\n", price(q.RegularMarketDayLow), price(q.RegularMarketDayHigh))
	fmt.Printf("52W:      %s - %s\n", price(q.FiftyTwoWeekLow), price(q.FiftyTwoWeekHigh))
	fmt.Printf("Volume:   %s\n", core.FormatCompact(float64(q.RegularMarketVolume)))

	return nil
}

func price(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
