package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SharedItem is an expense split between several payers.
type SharedItem struct {
	ID          string
	Title       string
	TotalAmount decimal.Decimal
	DueDate     *time.Time
	CreatedBy   string
	// Obligation is set when the item tracks principal and interest separately.
	Obligation *Obligation
	Schedule   Schedule
}

// Validate checks the item's amounts.
func (i SharedItem) Validate() error {
	if i.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: total amount %s", ErrInvalidAmount, i.TotalAmount)
	}
	if err := ValidateAmount(i.TotalAmount); err != nil {
		return err
	}
	if i.Obligation != nil {
		if err := i.Obligation.Validate(); err != nil {
			return err
		}
	}
	return i.Schedule.Validate()
}

// ApplySchedule replaces the item's schedule and derives the obligation and
// total amount from the schedule sums.
func (i SharedItem) ApplySchedule(s Schedule) (SharedItem, error) {
	if err := s.Validate(); err != nil {
		return SharedItem{}, err
	}
	o := s.Obligation()
	i.Schedule = s
	i.Obligation = &o
	i.TotalAmount = o.Total()
	return i, nil
}

// SharedItemSummary holds the figures shown for one shared item.
type SharedItemSummary struct {
	Item            SharedItem
	TotalPaid       decimal.Decimal
	Remaining       decimal.Decimal
	ProgressPercent decimal.Decimal
	PaymentCount    int

	// Breakdown is nil unless the item carries an obligation.
	Breakdown     *AllocationBreakdown
	PrincipalLeft decimal.Decimal
	InterestLeft  decimal.Decimal

	// Schedule is nil unless the item carries a schedule.
	Schedule         *ScheduleReport
	TotalOverpayment decimal.Decimal

	// Transactions are the expenses recorded for the payments, oldest first.
	Transactions []Transaction
}

// Active reports whether the item still has an outstanding balance.
func (s SharedItemSummary) Active() bool {
	return s.TotalPaid.LessThan(s.Item.TotalAmount)
}

// SummarizeSharedItem computes paid, remaining and, when the item has one,
// the interest/principal breakdown and the per-period schedule report.
// Payments are applied oldest first.
func SummarizeSharedItem(item SharedItem, payments []Payment) (*SharedItemSummary, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	seq := NewPaymentSequence(payments)
	if err := validatePayments(seq.Amounts()); err != nil {
		return nil, err
	}

	paid := seq.Total()
	summary := &SharedItemSummary{
		Item:             item,
		TotalPaid:        paid,
		Remaining:        NonNegative(item.TotalAmount.Sub(paid)),
		ProgressPercent:  Percent(paid, item.TotalAmount),
		PaymentCount:     seq.Len(),
		PrincipalLeft:    decimal.Zero,
		InterestLeft:     decimal.Zero,
		TotalOverpayment: decimal.Zero,
		Transactions:     make([]Transaction, 0, seq.Len()),
	}
	for _, p := range seq.Payments() {
		summary.Transactions = append(summary.Transactions, SharedPaymentTransaction(item.Title, p))
	}

	if item.Obligation != nil && !item.Obligation.IsZero() {
		breakdown, err := Breakdown(seq, *item.Obligation)
		if err != nil {
			return nil, err
		}
		summary.Breakdown = breakdown
		summary.PrincipalLeft = breakdown.Totals.RemainingPrincipal
		summary.InterestLeft = breakdown.Totals.RemainingInterest
	}

	if len(item.Schedule) > 0 {
		report, err := EvaluateSchedule(item.Schedule, seq)
		if err != nil {
			return nil, err
		}
		summary.Schedule = report
		summary.TotalOverpayment = report.TotalOverpayment
	}

	return summary, nil
}

// SharedTotals are the dashboard figures over all shared items.
type SharedTotals struct {
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Active    int
}

// SharedItemBalance is the minimal view of a shared item needed for totals.
type SharedItemBalance struct {
	ID          string
	Title       string
	TotalAmount decimal.Decimal
	TotalPaid   decimal.Decimal
}

// SumSharedItems aggregates totals over all items.
func SumSharedItems(items []SharedItemBalance) SharedTotals {
	t := SharedTotals{Total: decimal.Zero, Paid: decimal.Zero}
	for _, i := range items {
		t.Total = t.Total.Add(i.TotalAmount)
		t.Paid = t.Paid.Add(i.TotalPaid)
		if i.TotalPaid.LessThan(i.TotalAmount) {
			t.Active++
		}
	}
	t.Remaining = t.Total.Sub(t.Paid)
	return t
}
