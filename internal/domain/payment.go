package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a single contribution applied against an obligation.
type Payment struct {
	ID          string
	PayerID     string
	Description string
	Amount      decimal.Decimal
	PaidAt      time.Time
	// PeriodID ties the payment to a schedule period. Nil means untagged.
	PeriodID *int
}

// InPeriod reports whether the payment is tagged with the given period.
func (p Payment) InPeriod(periodID int) bool {
	return p.PeriodID != nil && *p.PeriodID == periodID
}

// PaymentSequence is a chronologically ordered list of payments.
// The only way to build one is NewPaymentSequence, so the allocation order is
// always oldest first regardless of how the caller loaded the records.
type PaymentSequence struct {
	payments []Payment
}

// NewPaymentSequence copies and stable-sorts payments by PaidAt ascending.
// Payments sharing a timestamp keep their input order.
func NewPaymentSequence(payments []Payment) PaymentSequence {
	sorted := make([]Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaidAt.Before(sorted[j].PaidAt)
	})
	return PaymentSequence{payments: sorted}
}

// Len returns the number of payments.
func (s PaymentSequence) Len() int {
	return len(s.payments)
}

// Payments returns a copy of the ordered payments.
func (s PaymentSequence) Payments() []Payment {
	out := make([]Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// Amounts returns the payment amounts in allocation order.
func (s PaymentSequence) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.payments))
	for i, p := range s.payments {
		out[i] = p.Amount
	}
	return out
}

// Total returns the sum of all payment amounts.
func (s PaymentSequence) Total() decimal.Decimal {
	return Sum(s.Amounts())
}

// ForPeriod returns the ordered payments tagged with periodID.
func (s PaymentSequence) ForPeriod(periodID int) PaymentSequence {
	var out []Payment
	for _, p := range s.payments {
		if p.InPeriod(periodID) {
			out = append(out, p)
		}
	}
	return PaymentSequence{payments: out}
}
