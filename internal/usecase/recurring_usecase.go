package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fintrack/internal/domain"
)

// RecurringUseCase computes occurrences of recurring templates.
type RecurringUseCase struct {
	idGen   IDGenerator
	metrics MetricsRecorder
}

// NewRecurringUseCase creates a new RecurringUseCase.
func NewRecurringUseCase(idGen IDGenerator, metrics MetricsRecorder) *RecurringUseCase {
	return &RecurringUseCase{idGen: idGen, metrics: metrics}
}

// NextOccurrencesInput represents a template and how many occurrences to list.
type NextOccurrencesInput struct {
	Template domain.RecurringTemplate
	After    time.Time
	Count    int
}

// Next lists up to Count occurrences after After.
func (uc *RecurringUseCase) Next(ctx context.Context, input NextOccurrencesInput) ([]time.Time, error) {
	start := time.Now()
	occurrences, err := input.Template.NextOccurrences(input.After, input.Count)
	uc.metrics.ObserveComputation(OpRecurringNext, time.Since(start), err)
	return occurrences, err
}

// DueInput represents a template, when it last ran and the current time.
type DueInput struct {
	Template domain.RecurringTemplate
	// LastRun is zero when the template never ran.
	LastRun time.Time
	// Now is zero for the current time.
	Now time.Time
}

// DueResult reports whether a template is due and the transaction it yields.
type DueResult struct {
	Due         bool
	Occurrence  time.Time
	Transaction *domain.Transaction
}

// Due checks whether an occurrence fell between LastRun and Now and, if so,
// builds the transaction for it.
func (uc *RecurringUseCase) Due(ctx context.Context, input DueInput) (*DueResult, error) {
	start := time.Now()
	result, err := uc.due(input, start.UTC())
	uc.metrics.ObserveComputation(OpRecurringDue, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if result.Due {
		zerolog.Ctx(ctx).Debug().
			Str("template_id", input.Template.ID).
			Time("occurrence", result.Occurrence).
			Msg("recurring template due")
	}
	return result, nil
}

func (uc *RecurringUseCase) due(input DueInput, fallbackNow time.Time) (*DueResult, error) {
	now := input.Now
	if now.IsZero() {
		now = fallbackNow
	}

	due, err := input.Template.IsDue(input.LastRun, now)
	if err != nil {
		return nil, err
	}
	if !due {
		return &DueResult{}, nil
	}

	after := input.LastRun
	if after.IsZero() {
		after = input.Template.StartDate.Add(-time.Nanosecond)
	}
	next, err := input.Template.NextOccurrences(after, 1)
	if err != nil {
		return nil, err
	}

	tx := input.Template.Transaction(next[0])
	tx.ID = uc.idGen.Generate()
	return &DueResult{Due: true, Occurrence: next[0], Transaction: &tx}, nil
}
