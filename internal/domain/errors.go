package domain

import "errors"

var (
	// Allocation errors
	ErrNegativePayment = errors.New("payment amount must not be negative")
	ErrNegativeTarget  = errors.New("obligation targets must not be negative")
	ErrTooManyPayments = errors.New("too many payments")

	// Schedule errors
	ErrInvalidSchedule      = errors.New("invalid payment schedule")
	ErrScheduleMismatch     = errors.New("schedule totals do not match obligation")
	ErrPeriodNotFound       = errors.New("schedule period not found")
	ErrInvalidScheduleInput = errors.New("invalid schedule generation input")

	// Shared item errors
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrInvalidTitle   = errors.New("invalid title")

	// Recurring errors
	ErrUnknownFrequency = errors.New("unknown recurring frequency")
	ErrInvalidCount     = errors.New("occurrence count out of range")

	// Transaction errors
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)
