package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SchedulePeriod is one installment of a payment schedule with its own
// principal and interest sub-targets.
type SchedulePeriod struct {
	PeriodID  int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
}

// Total returns principal plus interest for the period.
func (p SchedulePeriod) Total() decimal.Decimal {
	return p.Principal.Add(p.Interest)
}

// Obligation returns the period's sub-targets as an Obligation.
func (p SchedulePeriod) Obligation() Obligation {
	return Obligation{PrincipalTarget: p.Principal, InterestTarget: p.Interest}
}

// Schedule is an ordered list of periods.
type Schedule []SchedulePeriod

// ScheduleTotals are the column sums of a schedule.
type ScheduleTotals struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
}

// Totals sums principal, interest and total over all periods.
func (s Schedule) Totals() ScheduleTotals {
	t := ScheduleTotals{Principal: decimal.Zero, Interest: decimal.Zero, Total: decimal.Zero}
	for _, p := range s {
		t.Principal = t.Principal.Add(p.Principal)
		t.Interest = t.Interest.Add(p.Interest)
		t.Total = t.Total.Add(p.Total())
	}
	return t
}

// Obligation derives the overall targets from the schedule sums. Editing a
// schedule replaces the obligation with these figures.
func (s Schedule) Obligation() Obligation {
	t := s.Totals()
	return Obligation{PrincipalTarget: t.Principal, InterestTarget: t.Interest}
}

// Validate checks amounts are non-negative and within MaxAmount and that
// period ids are unique.
func (s Schedule) Validate() error {
	seen := make(map[int]struct{}, len(s))
	for i, p := range s {
		if p.Principal.IsNegative() || p.Interest.IsNegative() {
			return fmt.Errorf("%w: period %d has a negative amount", ErrInvalidSchedule, p.PeriodID)
		}
		if err := ValidateAmount(p.Total()); err != nil {
			return fmt.Errorf("period %d: %w", p.PeriodID, err)
		}
		if _, dup := seen[p.PeriodID]; dup {
			return fmt.Errorf("%w: duplicate period id %d at position %d", ErrInvalidSchedule, p.PeriodID, i)
		}
		seen[p.PeriodID] = struct{}{}
	}
	return nil
}

// MatchesObligation checks that the schedule sums equal the obligation targets.
func (s Schedule) MatchesObligation(o Obligation) error {
	t := s.Totals()
	if !t.Principal.Equal(o.PrincipalTarget) || !t.Interest.Equal(o.InterestTarget) {
		return fmt.Errorf("%w: schedule principal=%s interest=%s, obligation principal=%s interest=%s",
			ErrScheduleMismatch, t.Principal, t.Interest, o.PrincipalTarget, o.InterestTarget)
	}
	return nil
}

// Find returns the period with the given id.
func (s Schedule) Find(periodID int) (SchedulePeriod, error) {
	for _, p := range s {
		if p.PeriodID == periodID {
			return p, nil
		}
	}
	return SchedulePeriod{}, fmt.Errorf("%w: %d", ErrPeriodNotFound, periodID)
}

// Append returns a copy with an empty period numbered after the last one.
func (s Schedule) Append(dueDate time.Time) Schedule {
	out := make(Schedule, len(s), len(s)+1)
	copy(out, s)
	return append(out, SchedulePeriod{
		PeriodID:  len(s) + 1,
		DueDate:   dueDate,
		Principal: decimal.Zero,
		Interest:  decimal.Zero,
	})
}

// Remove returns a copy without the period at index, renumbered from 1.
func (s Schedule) Remove(index int) (Schedule, error) {
	if index < 0 || index >= len(s) {
		return nil, fmt.Errorf("%w: index %d", ErrPeriodNotFound, index)
	}
	out := make(Schedule, 0, len(s)-1)
	out = append(out, s[:index]...)
	out = append(out, s[index+1:]...)
	for i := range out {
		out[i].PeriodID = i + 1
	}
	return out, nil
}

// Update returns a copy with the period of the same id replaced.
func (s Schedule) Update(period SchedulePeriod) (Schedule, error) {
	if _, err := s.Find(period.PeriodID); err != nil {
		return nil, err
	}
	out := make(Schedule, len(s))
	copy(out, s)
	for i := range out {
		if out[i].PeriodID == period.PeriodID {
			out[i] = period
		}
	}
	return out, nil
}

// ScheduleEditOp is the kind of change made by a ScheduleEdit.
type ScheduleEditOp string

const (
	ScheduleEditAppend ScheduleEditOp = "append"
	ScheduleEditRemove ScheduleEditOp = "remove"
	ScheduleEditUpdate ScheduleEditOp = "update"
)

// ScheduleEdit is one change to a schedule. Append uses Period.DueDate,
// remove uses Index and update replaces the period matching Period.PeriodID.
type ScheduleEdit struct {
	Op     ScheduleEditOp
	Index  int
	Period SchedulePeriod
}

// Edit applies the edits in order and validates the result.
func (s Schedule) Edit(edits []ScheduleEdit) (Schedule, error) {
	out := s
	for i, e := range edits {
		var err error
		switch e.Op {
		case ScheduleEditAppend:
			out = out.Append(e.Period.DueDate)
		case ScheduleEditRemove:
			out, err = out.Remove(e.Index)
		case ScheduleEditUpdate:
			out, err = out.Update(e.Period)
		default:
			err = fmt.Errorf("%w: unknown edit %q", ErrInvalidSchedule, e.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// PeriodStatus is the payment state of one schedule period.
type PeriodStatus struct {
	Period      SchedulePeriod
	Paid        decimal.Decimal
	Remaining   decimal.Decimal
	Overpayment decimal.Decimal
	Complete    bool
	Allocation  RunningTotals
	Payments    int
}

// ScheduleReport is the per-period evaluation of a schedule.
type ScheduleReport struct {
	Periods          []PeriodStatus
	Totals           ScheduleTotals
	TotalPaid        decimal.Decimal
	TotalOverpayment decimal.Decimal
	UnassignedPaid   decimal.Decimal
	CompletedPeriods int
}

// EvaluateSchedule compares the payments tagged to each period with that
// period's total. Overpayment in one period is reported on its own and never
// reduces another period.
func EvaluateSchedule(schedule Schedule, seq PaymentSequence) (*ScheduleReport, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if err := validatePayments(seq.Amounts()); err != nil {
		return nil, err
	}

	report := &ScheduleReport{
		Periods:          make([]PeriodStatus, 0, len(schedule)),
		Totals:           schedule.Totals(),
		TotalPaid:        seq.Total(),
		TotalOverpayment: decimal.Zero,
		UnassignedPaid:   decimal.Zero,
	}

	assigned := decimal.Zero
	for _, period := range schedule {
		periodSeq := seq.ForPeriod(period.PeriodID)
		paid := periodSeq.Total()
		total := period.Total()

		alloc, err := Accumulate(periodSeq.Amounts(), period.Principal, period.Interest)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", period.PeriodID, err)
		}

		status := PeriodStatus{
			Period:      period,
			Paid:        paid,
			Remaining:   NonNegative(total.Sub(paid)),
			Overpayment: NonNegative(paid.Sub(total)),
			Complete:    paid.GreaterThanOrEqual(total),
			Allocation:  alloc,
			Payments:    periodSeq.Len(),
		}
		if status.Complete {
			report.CompletedPeriods++
		}

		report.Periods = append(report.Periods, status)
		report.TotalOverpayment = report.TotalOverpayment.Add(status.Overpayment)
		assigned = assigned.Add(paid)
	}

	report.UnassignedPaid = report.TotalPaid.Sub(assigned)
	return report, nil
}
