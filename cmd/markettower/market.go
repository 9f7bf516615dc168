package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/0shark/markettower/internal/calendar"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show whether the market is open and its next session times",
	RunE:  runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// No provider is needed, so skip bootstrap.
	st := calendar.New(loc).Status(time.Now())

	state := "closed"
	if st.Open {
		state = "open"
	}
	fmt.Printf("Market:     %s\n", state)
	fmt.Printf("Timezone:   %s\n", st.Timezone)
	fmt.Printf("Last close: %s\n", st.LastClose.In(loc).Format(time.RFC1123))
	fmt.Printf("Next open:  %s\n", st.NextOpen.In(loc).Format(time.RFC1123))
	return nil
}
