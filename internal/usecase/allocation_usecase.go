package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

// Operation names used for metrics and cache keys.
const (
	OpAllocate      = "allocate"
	OpAccumulate    = "accumulate"
	OpBreakdown     = "breakdown"
	OpEvaluate      = "evaluate_schedule"
	OpGenerate      = "generate_schedule"
	OpEditSchedule  = "edit_schedule"
	OpSharedSummary = "shared_item_summary"
	OpDashboard     = "dashboard_summary"
	OpBudgets       = "budget_progress"
	OpSavings       = "savings_progress"
	OpRecurringNext = "recurring_next"
	OpRecurringDue  = "recurring_due"
)

// DefaultReportTTL is used when no cache TTL is configured.
const DefaultReportTTL = 10 * time.Minute

// AllocationUseCase runs the allocation engine and caches breakdown reports.
type AllocationUseCase struct {
	cache    Cache
	metrics  MetricsRecorder
	idGen    IDGenerator
	cacheTTL time.Duration
}

// NewAllocationUseCase creates a new AllocationUseCase. A nil cache disables
// report caching.
func NewAllocationUseCase(cache Cache, metrics MetricsRecorder, idGen IDGenerator, cacheTTL time.Duration) *AllocationUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultReportTTL
	}
	return &AllocationUseCase{
		cache:    cache,
		metrics:  metrics,
		idGen:    idGen,
		cacheTTL: cacheTTL,
	}
}

// AllocateInput represents a single payment against remaining balances.
type AllocateInput struct {
	Payment            decimal.Decimal
	RemainingInterest  decimal.Decimal
	RemainingPrincipal decimal.Decimal
}

// AllocateResult is the split of one payment and the part nothing absorbed.
type AllocateResult struct {
	Allocation domain.Allocation
	Excess     decimal.Decimal
}

// Allocate splits one payment between interest and principal.
func (uc *AllocationUseCase) Allocate(ctx context.Context, input AllocateInput) AllocateResult {
	start := time.Now()
	a := domain.Allocate(input.Payment, input.RemainingInterest, input.RemainingPrincipal)
	uc.metrics.ObserveComputation(OpAllocate, time.Since(start), nil)

	return AllocateResult{Allocation: a, Excess: a.Excess(input.Payment)}
}

// AccumulateInput represents an ordered list of payment amounts against targets.
type AccumulateInput struct {
	PrincipalTarget decimal.Decimal
	InterestTarget  decimal.Decimal
	Payments        []decimal.Decimal
}

// Accumulate folds the payments in the order given.
func (uc *AllocationUseCase) Accumulate(ctx context.Context, input AccumulateInput) (domain.RunningTotals, error) {
	start := time.Now()
	totals, err := domain.Accumulate(input.Payments, input.PrincipalTarget, input.InterestTarget)
	uc.metrics.ObserveComputation(OpAccumulate, time.Since(start), err)
	return totals, err
}

// BreakdownInput represents payments applied to an obligation.
type BreakdownInput struct {
	Obligation domain.Obligation
	Payments   []domain.Payment
}

// BreakdownReport is a computed breakdown with its report id.
type BreakdownReport struct {
	ID        string                      `json:"id"`
	Breakdown *domain.AllocationBreakdown `json:"breakdown"`
	Cached    bool                        `json:"-"`
}

// Breakdown applies payments oldest first and records every step. Reports are
// cached by the canonical form of the input; cache failures are logged and
// the report is computed directly.
func (uc *AllocationUseCase) Breakdown(ctx context.Context, input BreakdownInput) (*BreakdownReport, error) {
	start := time.Now()
	seq := domain.NewPaymentSequence(input.Payments)

	key, keyErr := breakdownKey(input.Obligation, seq)
	if keyErr == nil {
		if report, ok := uc.cachedBreakdown(ctx, key); ok {
			uc.metrics.ObserveComputation(OpBreakdown, time.Since(start), nil)
			return report, nil
		}
	}

	breakdown, err := domain.Breakdown(seq, input.Obligation)
	uc.metrics.ObserveComputation(OpBreakdown, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	report := &BreakdownReport{ID: uc.idGen.Generate(), Breakdown: breakdown}
	if keyErr == nil {
		uc.storeBreakdown(ctx, key, report)
	}
	return report, nil
}

// EvaluateScheduleInput represents a schedule and the payments tagged to it.
type EvaluateScheduleInput struct {
	Schedule domain.Schedule
	Payments []domain.Payment
	// Obligation, when set, must equal the schedule sums.
	Obligation *domain.Obligation
}

// EvaluateSchedule reports paid, remaining and overpayment per period.
func (uc *AllocationUseCase) EvaluateSchedule(ctx context.Context, input EvaluateScheduleInput) (*domain.ScheduleReport, error) {
	start := time.Now()
	report, err := uc.evaluateSchedule(input)
	uc.metrics.ObserveComputation(OpEvaluate, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if report.TotalOverpayment.IsPositive() {
		uc.metrics.RecordOverpayment(report.TotalOverpayment)
		zerolog.Ctx(ctx).Info().
			Str("overpayment", report.TotalOverpayment.String()).
			Int("periods", len(report.Periods)).
			Msg("schedule overpayment detected")
	}
	return report, nil
}

func (uc *AllocationUseCase) evaluateSchedule(input EvaluateScheduleInput) (*domain.ScheduleReport, error) {
	if input.Obligation != nil {
		if err := input.Schedule.MatchesObligation(*input.Obligation); err != nil {
			return nil, err
		}
	}
	return domain.EvaluateSchedule(input.Schedule, domain.NewPaymentSequence(input.Payments))
}

// GenerateScheduleInput represents the terms of a fixed-payment loan.
type GenerateScheduleInput struct {
	Principal     decimal.Decimal
	AnnualRateBps int
	TermMonths    int
	StartDate     time.Time
}

// GenerateSchedule builds an amortization schedule. A zero start date means today.
func (uc *AllocationUseCase) GenerateSchedule(ctx context.Context, input GenerateScheduleInput) (domain.Schedule, error) {
	start := time.Now()
	startDate := input.StartDate
	if startDate.IsZero() {
		now := start.UTC()
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	schedule, err := domain.GenerateSchedule(input.Principal, input.AnnualRateBps, input.TermMonths, startDate)
	uc.metrics.ObserveComputation(OpGenerate, time.Since(start), err)
	return schedule, err
}

// EditScheduleInput represents a schedule and the edits to apply to it.
type EditScheduleInput struct {
	Schedule domain.Schedule
	Edits    []domain.ScheduleEdit
}

// EditSchedule applies edits to a schedule. The obligation of the edited
// schedule is its Totals.
func (uc *AllocationUseCase) EditSchedule(ctx context.Context, input EditScheduleInput) (domain.Schedule, error) {
	start := time.Now()
	schedule, err := input.Schedule.Edit(input.Edits)
	uc.metrics.ObserveComputation(OpEditSchedule, time.Since(start), err)
	return schedule, err
}

// SharedItemInput represents a shared item and all payments made toward it.
type SharedItemInput struct {
	Item     domain.SharedItem
	Payments []domain.Payment
}

// SummarizeSharedItem computes the figures shown for one shared item.
func (uc *AllocationUseCase) SummarizeSharedItem(ctx context.Context, input SharedItemInput) (*domain.SharedItemSummary, error) {
	start := time.Now()
	summary, err := domain.SummarizeSharedItem(input.Item, input.Payments)
	uc.metrics.ObserveComputation(OpSharedSummary, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if summary.TotalOverpayment.IsPositive() {
		uc.metrics.RecordOverpayment(summary.TotalOverpayment)
	}
	return summary, nil
}

func (uc *AllocationUseCase) cachedBreakdown(ctx context.Context, key string) (*BreakdownReport, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		uc.metrics.RecordCacheResult(OpBreakdown, false)
		return nil, false
	}

	var report BreakdownReport
	if err := json.Unmarshal(data, &report); err != nil || report.Breakdown == nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cached report")
		uc.metrics.RecordCacheResult(OpBreakdown, false)
		return nil, false
	}

	uc.metrics.RecordCacheResult(OpBreakdown, true)
	report.Cached = true
	return &report, true
}

func (uc *AllocationUseCase) storeBreakdown(ctx context.Context, key string, report *BreakdownReport) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("encode report for cache")
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

// breakdownKey hashes the obligation and the ordered payments, so the same
// payments supplied in a different order share a key.
func breakdownKey(o domain.Obligation, seq domain.PaymentSequence) (string, error) {
	canonical, err := json.Marshal(struct {
		Obligation domain.Obligation
		Payments   []domain.Payment
	}{o, seq.Payments()})
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return OpBreakdown + ":" + strconv.FormatUint(xxhash.Sum64(canonical), 16), nil
}
