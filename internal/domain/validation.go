package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTitleLength = 255
	MaxAmount      = "1000000000000" // 1 trillion
	MaxPayments    = 10000
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// ValidateAmount rejects amounts above MaxAmount. Sign is checked by callers.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}
	return nil
}

// ValidateTitle validates a shared item or template title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidTitle, MaxTitleLength)
	}
	return nil
}

// ValidatePaymentCount bounds the number of payments in a single computation.
func ValidatePaymentCount(n int) error {
	if n > MaxPayments {
		return fmt.Errorf("%w: %d payments, limit is %d", ErrTooManyPayments, n, MaxPayments)
	}
	return nil
}
