package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iho/fintrack/internal/domain"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Recurring transaction operations",
	}
	cmd.AddCommand(recurringNextCmd())
	return cmd
}

func recurringNextCmd() *cobra.Command {
	var (
		frequency string
		start     string
		after     string
		count     int
	)

	cmd := &cobra.Command{
		Use:   "next",
		Short: "List upcoming occurrences of a recurring template",
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := domain.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			if startDate.IsZero() {
				return fmt.Errorf("start: required")
			}

			now := time.Now().UTC()
			afterDate, err := parseDate("after", after)
			if err != nil {
				return err
			}
			if afterDate.IsZero() {
				afterDate = now
			}

			tmpl := domain.RecurringTemplate{Frequency: freq, StartDate: startDate, Active: true}
			occurrences, err := tmpl.NextOccurrences(afterDate, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, o := range occurrences {
				fmt.Fprintf(out, "%s  %s\n", o.Format(dateLayout), humanize.RelTime(o, now, "ago", "from now"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", "monthly", "daily, weekly, monthly or yearly")
	cmd.Flags().StringVar(&start, "start", "", "Template start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&after, "after", "", "List occurrences after this date; defaults to now")
	cmd.Flags().IntVar(&count, "count", 5, "Number of occurrences")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
