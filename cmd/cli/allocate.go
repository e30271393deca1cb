package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// allocationDocument is the file read by the allocate command. YAML is a
// superset of JSON, so either format is accepted.
type allocationDocument struct {
	Obligation *obligationDocument `yaml:"obligation"`
	Schedule   []periodDocument    `yaml:"schedule"`
	Payments   []paymentDocument   `yaml:"payments"`
}

type obligationDocument struct {
	PrincipalTarget string `yaml:"principal_target"`
	InterestTarget  string `yaml:"interest_target"`
}

type periodDocument struct {
	PeriodID  int    `yaml:"period_id"`
	DueDate   string `yaml:"due_date,omitempty"`
	Principal string `yaml:"principal"`
	Interest  string `yaml:"interest"`
}

type paymentDocument struct {
	ID          string `yaml:"id,omitempty"`
	PayerID     string `yaml:"payer_id,omitempty"`
	Description string `yaml:"description,omitempty"`
	Amount      string `yaml:"amount"`
	PaidAt      string `yaml:"paid_at"`
	PeriodID    *int   `yaml:"period_id,omitempty"`
}

// allocationReport is what the allocate command prints.
type allocationReport struct {
	Breakdown *dto.BreakdownResponse      `json:"breakdown"`
	Schedule  *dto.ScheduleReportResponse `json:"schedule,omitempty"`
}

func allocateCmd() *cobra.Command {
	var (
		file   string
		remote bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Apply payments to an obligation, interest first",
		Long: `Reads an obligation, an optional schedule and payments from a YAML or JSON file
and prints the per-payment breakdown and, when a schedule is given, the
per-period report. Without an obligation the schedule sums are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readAllocationDocument(file)
			if err != nil {
				return err
			}
			breakdownReq, scheduleReq, err := doc.requests()
			if err != nil {
				return err
			}

			var report allocationReport
			if remote {
				report, err = allocateRemote(cmd, breakdownReq, scheduleReq)
			} else {
				report, err = allocateLocal(breakdownReq, scheduleReq)
			}
			if err != nil {
				return err
			}

			if output == "json" {
				return printJSON(cmd.OutOrStdout(), report)
			}
			return printAllocationReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON document with obligation, schedule and payments")
	cmd.Flags().BoolVar(&remote, "remote", false, "Compute on the API server instead of locally")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readAllocationDocument(path string) (*allocationDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc allocationDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Obligation == nil && len(doc.Schedule) == 0 {
		return nil, fmt.Errorf("%s: needs an obligation or a schedule", path)
	}
	return &doc, nil
}

// requests converts the document into API requests. The schedule request is
// nil when the document has no schedule.
func (d *allocationDocument) requests() (*dto.BreakdownRequest, *dto.EvaluateScheduleRequest, error) {
	payments := make([]dto.PaymentRequest, len(d.Payments))
	for i, p := range d.Payments {
		field := fmt.Sprintf("payments[%d]", i)
		amount, err := parseAmount(field+".amount", p.Amount)
		if err != nil {
			return nil, nil, err
		}
		paidAt, err := parseDate(field+".paid_at", p.PaidAt)
		if err != nil {
			return nil, nil, err
		}
		payments[i] = dto.PaymentRequest{
			ID:          p.ID,
			PayerID:     p.PayerID,
			Description: p.Description,
			Amount:      amount,
			PaidAt:      paidAt,
			PeriodID:    p.PeriodID,
		}
	}

	periods := make([]dto.SchedulePeriodRequest, len(d.Schedule))
	for i, p := range d.Schedule {
		field := fmt.Sprintf("schedule[%d]", i)
		principal, err := parseAmount(field+".principal", p.Principal)
		if err != nil {
			return nil, nil, err
		}
		interest, err := parseAmount(field+".interest", p.Interest)
		if err != nil {
			return nil, nil, err
		}
		due, err := parseDate(field+".due_date", p.DueDate)
		if err != nil {
			return nil, nil, err
		}
		periods[i] = dto.SchedulePeriodRequest{PeriodID: p.PeriodID, DueDate: due, Principal: principal, Interest: interest}
	}

	var obligation dto.ObligationRequest
	if d.Obligation != nil {
		principal, err := parseAmount("obligation.principal_target", d.Obligation.PrincipalTarget)
		if err != nil {
			return nil, nil, err
		}
		interest, err := parseAmount("obligation.interest_target", d.Obligation.InterestTarget)
		if err != nil {
			return nil, nil, err
		}
		obligation = dto.ObligationRequest{PrincipalTarget: principal, InterestTarget: interest}
	} else {
		o := dto.ScheduleToDomain(periods).Obligation()
		obligation = dto.ObligationRequest{PrincipalTarget: o.PrincipalTarget, InterestTarget: o.InterestTarget}
	}

	breakdownReq := &dto.BreakdownRequest{Obligation: obligation, Payments: payments}
	if len(periods) == 0 {
		return breakdownReq, nil, nil
	}

	scheduleReq := &dto.EvaluateScheduleRequest{Schedule: periods, Payments: payments}
	if d.Obligation != nil {
		scheduleReq.Obligation = &obligation
	}
	return breakdownReq, scheduleReq, nil
}

func allocateLocal(breakdownReq *dto.BreakdownRequest, scheduleReq *dto.EvaluateScheduleRequest) (allocationReport, error) {
	var report allocationReport

	input := breakdownReq.ToUseCaseInput()
	breakdown, err := domain.Breakdown(domain.NewPaymentSequence(input.Payments), input.Obligation)
	if err != nil {
		return report, err
	}
	report.Breakdown = dto.BreakdownFromDomain(breakdown)

	if scheduleReq != nil {
		scheduleReport, err := evaluateLocal(scheduleReq.ToUseCaseInput())
		if err != nil {
			return report, err
		}
		report.Schedule = dto.ScheduleReportFromDomain(scheduleReport)
	}
	return report, nil
}

func evaluateLocal(input usecase.EvaluateScheduleInput) (*domain.ScheduleReport, error) {
	if input.Obligation != nil {
		if err := input.Schedule.MatchesObligation(*input.Obligation); err != nil {
			return nil, err
		}
	}
	return domain.EvaluateSchedule(input.Schedule, domain.NewPaymentSequence(input.Payments))
}

func allocateRemote(cmd *cobra.Command, breakdownReq *dto.BreakdownRequest, scheduleReq *dto.EvaluateScheduleRequest) (allocationReport, error) {
	var report allocationReport

	var breakdown dto.BreakdownResponse
	if err := postJSON(cmd.Context(), "/api/v1/allocations/breakdown", breakdownReq, &breakdown); err != nil {
		return report, err
	}
	report.Breakdown = &breakdown

	if scheduleReq != nil {
		var schedule dto.ScheduleReportResponse
		if err := postJSON(cmd.Context(), "/api/v1/schedules/evaluate", scheduleReq, &schedule); err != nil {
			return report, err
		}
		report.Schedule = &schedule
	}
	return report, nil
}

func printAllocationReport(w io.Writer, report allocationReport) error {
	b := report.Breakdown
	fmt.Fprintf(w, "Obligation: principal %s, interest %s\n\n", money(b.PrincipalTarget), money(b.InterestTarget))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tPaid at\tAmount\tInterest\tPrincipal\tUnallocated\tInterest left\tPrincipal left\t")
	for _, s := range b.Steps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Index+1,
			s.Payment.PaidAt.Format(dateLayout),
			money(s.Payment.Amount),
			money(s.ToInterest),
			money(s.ToPrincipal),
			money(s.Unallocated),
			money(s.RemainingInterest),
			money(s.RemainingPrincipal),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPaid %s: interest %s, principal %s, unallocated %s\n",
		money(b.TotalPaid), money(b.Totals.TotalInterestPaid), money(b.Totals.TotalPrincipalPaid), money(b.TotalUnallocated))
	fmt.Fprintf(w, "Remaining: interest %s, principal %s\n", money(b.Totals.RemainingInterest), money(b.Totals.RemainingPrincipal))

	if report.Schedule == nil {
		return nil
	}

	s := report.Schedule
	fmt.Fprintf(w, "\nSchedule: %d of %d periods complete\n\n", s.CompletedPeriods, len(s.Periods))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tDue\tTotal\tPaid\tRemaining\tOverpaid\tStatus\t")
	for _, p := range s.Periods {
		status := "open"
		if p.Complete {
			status = "paid"
		}
		due := ""
		if !p.DueDate.IsZero() {
			due = p.DueDate.Format(dateLayout)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.PeriodID, due, money(p.Total), money(p.Paid), money(p.Remaining), money(p.Overpayment), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nOverpaid %s, unassigned %s\n", money(s.TotalOverpayment), money(s.UnassignedPaid))
	return nil
}
