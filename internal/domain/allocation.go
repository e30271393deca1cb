package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocation is how one payment is split between the interest and principal
// buckets. Any part of the payment beyond both remaining balances is not
// represented here; see Excess.
type Allocation struct {
	ToInterest  decimal.Decimal
	ToPrincipal decimal.Decimal
}

// Allocated returns ToInterest + ToPrincipal.
func (a Allocation) Allocated() decimal.Decimal {
	return a.ToInterest.Add(a.ToPrincipal)
}

// Excess returns the part of payment this allocation did not absorb.
func (a Allocation) Excess(payment decimal.Decimal) decimal.Decimal {
	return NonNegative(NonNegative(payment).Sub(a.Allocated()))
}

// RunningTotals is the state threaded through a sequence of payments.
type RunningTotals struct {
	TotalInterestPaid  decimal.Decimal
	TotalPrincipalPaid decimal.Decimal
	RemainingInterest  decimal.Decimal
	RemainingPrincipal decimal.Decimal
}

// Apply credits an allocation to the totals.
func (t RunningTotals) Apply(a Allocation) RunningTotals {
	return RunningTotals{
		TotalInterestPaid:  t.TotalInterestPaid.Add(a.ToInterest),
		TotalPrincipalPaid: t.TotalPrincipalPaid.Add(a.ToPrincipal),
		RemainingInterest:  t.RemainingInterest.Sub(a.ToInterest),
		RemainingPrincipal: t.RemainingPrincipal.Sub(a.ToPrincipal),
	}
}

// Retired reports whether both buckets are fully paid.
func (t RunningTotals) Retired() bool {
	return t.RemainingInterest.IsZero() && t.RemainingPrincipal.IsZero()
}

// Allocate splits payment between interest and principal. Interest is always
// cleared before any principal is retired. Negative inputs are treated as zero.
func Allocate(payment, remainingInterest, remainingPrincipal decimal.Decimal) Allocation {
	payment = NonNegative(payment)
	remainingInterest = NonNegative(remainingInterest)
	remainingPrincipal = NonNegative(remainingPrincipal)

	toInterest := decimal.Zero
	leftover := payment
	if remainingInterest.IsPositive() {
		toInterest = decimal.Min(payment, remainingInterest)
		leftover = payment.Sub(toInterest)
	}

	toPrincipal := decimal.Zero
	if leftover.IsPositive() && remainingPrincipal.IsPositive() {
		toPrincipal = decimal.Min(leftover, remainingPrincipal)
	}

	return Allocation{ToInterest: toInterest, ToPrincipal: toPrincipal}
}

// Accumulate folds payments, in the given order, through Allocate starting
// from the obligation targets.
func Accumulate(payments []decimal.Decimal, principalTarget, interestTarget decimal.Decimal) (RunningTotals, error) {
	obligation, err := NewObligation(principalTarget, interestTarget)
	if err != nil {
		return RunningTotals{}, err
	}
	if err := validatePayments(payments); err != nil {
		return RunningTotals{}, err
	}

	totals := initialTotals(obligation)
	for _, p := range payments {
		totals = totals.Apply(Allocate(p, totals.RemainingInterest, totals.RemainingPrincipal))
	}
	return totals, nil
}

// AllocationStep records one payment of a breakdown.
type AllocationStep struct {
	Index              int
	Payment            Payment
	Allocation         Allocation
	RemainingInterest  decimal.Decimal
	RemainingPrincipal decimal.Decimal
	Unallocated        decimal.Decimal
}

// AllocationBreakdown is the per-payment view of an accumulation.
type AllocationBreakdown struct {
	Obligation       Obligation
	Steps            []AllocationStep
	Totals           RunningTotals
	TotalPaid        decimal.Decimal
	TotalUnallocated decimal.Decimal
}

// Breakdown applies the ordered payments to the obligation and records every
// step. Unallocated amounts are summed separately and never reduce anything.
func Breakdown(seq PaymentSequence, obligation Obligation) (*AllocationBreakdown, error) {
	if err := obligation.Validate(); err != nil {
		return nil, err
	}
	if err := validatePayments(seq.Amounts()); err != nil {
		return nil, err
	}

	result := &AllocationBreakdown{
		Obligation:       obligation,
		Steps:            make([]AllocationStep, 0, seq.Len()),
		Totals:           initialTotals(obligation),
		TotalPaid:        decimal.Zero,
		TotalUnallocated: decimal.Zero,
	}

	for i, p := range seq.Payments() {
		a := Allocate(p.Amount, result.Totals.RemainingInterest, result.Totals.RemainingPrincipal)
		result.Totals = result.Totals.Apply(a)
		excess := a.Excess(p.Amount)

		result.Steps = append(result.Steps, AllocationStep{
			Index:              i,
			Payment:            p,
			Allocation:         a,
			RemainingInterest:  result.Totals.RemainingInterest,
			RemainingPrincipal: result.Totals.RemainingPrincipal,
			Unallocated:        excess,
		})
		result.TotalPaid = result.TotalPaid.Add(p.Amount)
		result.TotalUnallocated = result.TotalUnallocated.Add(excess)
	}

	return result, nil
}

func initialTotals(o Obligation) RunningTotals {
	return RunningTotals{
		TotalInterestPaid:  decimal.Zero,
		TotalPrincipalPaid: decimal.Zero,
		RemainingInterest:  o.InterestTarget,
		RemainingPrincipal: o.PrincipalTarget,
	}
}

func validatePayments(payments []decimal.Decimal) error {
	if err := ValidatePaymentCount(len(payments)); err != nil {
		return err
	}
	for i, p := range payments {
		if p.IsNegative() {
			return fmt.Errorf("%w: payment %d is %s", ErrNegativePayment, i, p)
		}
		if err := ValidateAmount(p); err != nil {
			return fmt.Errorf("payment %d: %w", i, err)
		}
	}
	return nil
}
