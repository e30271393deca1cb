package domain

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring template fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// MaxOccurrences bounds a single NextOccurrences call.
const MaxOccurrences = 366

// ParseFrequency validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
}

// RecurringTemplate generates a transaction on a fixed cadence anchored to
// StartDate.
type RecurringTemplate struct {
	ID          string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Frequency   Frequency
	StartDate   time.Time
	Active      bool
}

// CronSpec returns the standard cron expression for the template. Monthly
// and yearly templates anchored after the 28th use a 28-31 day range and are
// clamped to the month's last day by NextOccurrences.
func (r RecurringTemplate) CronSpec() (string, error) {
	start := r.StartDate
	day := start.Day()
	daySpec := fmt.Sprintf("%d", day)
	if day > 28 {
		daySpec = "28-31"
	}

	switch r.Frequency {
	case FrequencyDaily:
		return "0 0 * * *", nil
	case FrequencyWeekly:
		return fmt.Sprintf("0 0 * * %d", int(start.Weekday())), nil
	case FrequencyMonthly:
		return fmt.Sprintf("0 0 %s * *", daySpec), nil
	case FrequencyYearly:
		return fmt.Sprintf("0 0 %s %d *", daySpec, int(start.Month())), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, r.Frequency)
	}
}

// NextOccurrences returns up to n occurrences strictly after `after`, never
// before the start date.
func (r RecurringTemplate) NextOccurrences(after time.Time, n int) ([]time.Time, error) {
	if n <= 0 || n > MaxOccurrences {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrInvalidCount, n, MaxOccurrences)
	}

	spec, err := r.CronSpec()
	if err != nil {
		return nil, err
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	start := startOfDay(r.StartDate)
	cursor := after.In(start.Location())
	if floor := start.Add(-time.Nanosecond); cursor.Before(floor) {
		cursor = floor
	}

	out := make([]time.Time, 0, n)
	for len(out) < n {
		next := schedule.Next(cursor)
		if next.IsZero() {
			break
		}
		cursor = next
		if r.accepts(next) {
			out = append(out, next)
		}
	}
	return out, nil
}

// IsDue reports whether an occurrence fell between lastRun and now. A zero
// lastRun means the template never ran.
func (r RecurringTemplate) IsDue(lastRun, now time.Time) (bool, error) {
	if !r.Active {
		return false, nil
	}
	from := lastRun
	if from.IsZero() {
		from = startOfDay(r.StartDate).Add(-time.Nanosecond)
	}
	next, err := r.NextOccurrences(from, 1)
	if err != nil {
		return false, err
	}
	if len(next) == 0 {
		return false, nil
	}
	return !next[0].After(now), nil
}

// Transaction returns the transaction the template produces at the given time.
func (r RecurringTemplate) Transaction(at time.Time) Transaction {
	return Transaction{
		Amount:      r.Amount,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Date:        at,
	}
}

// accepts filters the 28-31 range down to the clamped anchor day.
func (r RecurringTemplate) accepts(t time.Time) bool {
	anchor := r.StartDate.Day()
	if anchor <= 28 || (r.Frequency != FrequencyMonthly && r.Frequency != FrequencyYearly) {
		return true
	}
	return t.Day() == min(anchor, lastDayOfMonth(t))
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
