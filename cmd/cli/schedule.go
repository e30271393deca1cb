package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/fintrack/internal/domain"
)

// scheduleDocument is printed by schedule generate. Its schedule section can
// be pasted into an allocate document.
type scheduleDocument struct {
	Schedule []periodDocument `yaml:"schedule"`
	Totals   struct {
		Principal string `yaml:"principal"`
		Interest  string `yaml:"interest"`
		Total     string `yaml:"total"`
	} `yaml:"totals"`
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Payment schedule operations",
	}
	cmd.AddCommand(scheduleGenerateCmd())
	return cmd
}

func scheduleGenerateCmd() *cobra.Command {
	var (
		principal string
		rateBps   int
		months    int
		start     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a fixed-payment amortization schedule as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("principal", principal)
			if err != nil {
				return err
			}
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			if startDate.IsZero() {
				startDate = time.Now().UTC().Truncate(24 * time.Hour)
			}

			schedule, err := domain.GenerateSchedule(amount, rateBps, months, startDate)
			if err != nil {
				return err
			}
			return writeScheduleYAML(cmd.OutOrStdout(), schedule)
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Loan principal")
	cmd.Flags().IntVar(&rateBps, "rate-bps", 0, "Annual interest rate in basis points (500 = 5%)")
	cmd.Flags().IntVar(&months, "months", 12, "Term in months")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD), first payment due a month later; defaults to today")
	_ = cmd.MarkFlagRequired("principal")

	return cmd
}

func writeScheduleYAML(w io.Writer, schedule domain.Schedule) error {
	var doc scheduleDocument
	doc.Schedule = make([]periodDocument, len(schedule))
	for i, p := range schedule {
		doc.Schedule[i] = periodDocument{
			PeriodID:  p.PeriodID,
			DueDate:   p.DueDate.Format(dateLayout),
			Principal: p.Principal.StringFixed(2),
			Interest:  p.Interest.StringFixed(2),
		}
	}
	totals := schedule.Totals()
	doc.Totals.Principal = totals.Principal.StringFixed(2)
	doc.Totals.Interest = totals.Interest.StringFixed(2)
	doc.Totals.Total = totals.Total.StringFixed(2)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	return enc.Close()
}
