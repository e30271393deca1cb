package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// NonNegative returns amount, or zero when amount is negative.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// CappedPercent is Percent limited to the [0, 100] range.
func CappedPercent(part, whole decimal.Decimal) decimal.Decimal {
	return decimal.Min(NonNegative(Percent(part, whole)), hundred)
}

// Sum adds all amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
