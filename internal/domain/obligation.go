package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Obligation is a debt split into a principal and an interest target.
// Targets stay fixed for the duration of a computation.
type Obligation struct {
	PrincipalTarget decimal.Decimal
	InterestTarget  decimal.Decimal
}

// NewObligation creates a validated Obligation.
func NewObligation(principal, interest decimal.Decimal) (Obligation, error) {
	o := Obligation{PrincipalTarget: principal, InterestTarget: interest}
	if err := o.Validate(); err != nil {
		return Obligation{}, err
	}
	return o, nil
}

// Validate rejects negative or oversized targets.
func (o Obligation) Validate() error {
	if o.PrincipalTarget.IsNegative() {
		return fmt.Errorf("%w: principal %s", ErrNegativeTarget, o.PrincipalTarget)
	}
	if o.InterestTarget.IsNegative() {
		return fmt.Errorf("%w: interest %s", ErrNegativeTarget, o.InterestTarget)
	}
	if err := ValidateAmount(o.Total()); err != nil {
		return fmt.Errorf("obligation: %w", err)
	}
	return nil
}

// Total returns principal plus interest.
func (o Obligation) Total() decimal.Decimal {
	return o.PrincipalTarget.Add(o.InterestTarget)
}

// IsZero reports whether both targets are zero.
func (o Obligation) IsZero() bool {
	return o.PrincipalTarget.IsZero() && o.InterestTarget.IsZero()
}
