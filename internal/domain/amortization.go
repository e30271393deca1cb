package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxTermMonths bounds generated schedules.
const MaxTermMonths = 600

// GenerateSchedule builds a fixed-payment amortization schedule. The first
// period is due one month after start. annualRateBps is in basis points
// (500 = 5.00%). The last period absorbs rounding so that the principal column
// sums to principal exactly.
func GenerateSchedule(principal decimal.Decimal, annualRateBps, termMonths int, start time.Time) (Schedule, error) {
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", ErrInvalidScheduleInput)
	}
	if err := ValidateAmount(principal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleInput, err)
	}
	if termMonths <= 0 || termMonths > MaxTermMonths {
		return nil, fmt.Errorf("%w: term must be between 1 and %d months", ErrInvalidScheduleInput, MaxTermMonths)
	}
	if annualRateBps < 0 {
		return nil, fmt.Errorf("%w: rate must not be negative", ErrInvalidScheduleInput)
	}

	monthlyRate := float64(annualRateBps) / 10_000.0 / 12.0
	monthlyRateDec := decimal.NewFromFloat(monthlyRate)

	var payment decimal.Decimal
	if monthlyRate == 0 {
		payment = principal.DivRound(decimal.NewFromInt(int64(termMonths)), 2)
	} else {
		// P * r * (1+r)^n / ((1+r)^n - 1); float for the power only.
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		payment = decimal.NewFromFloat(principal.InexactFloat64() * monthlyRate * factor / (factor - 1)).Round(2)
	}

	schedule := make(Schedule, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRateDec).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		principalPart = NonNegative(principalPart)
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, SchedulePeriod{
			PeriodID:  period,
			DueDate:   start.AddDate(0, period, 0),
			Principal: principalPart,
			Interest:  interest,
		})
	}

	return schedule, nil
}
