package usecase

import (
	"context"
	"time"

	"github.com/iho/fintrack/internal/domain"
)

// DashboardUseCase aggregates transactions, budgets and savings goals.
type DashboardUseCase struct {
	metrics MetricsRecorder
}

// NewDashboardUseCase creates a new DashboardUseCase.
func NewDashboardUseCase(metrics MetricsRecorder) *DashboardUseCase {
	return &DashboardUseCase{metrics: metrics}
}

// DashboardInput represents everything the dashboard overview is computed from.
type DashboardInput struct {
	Transactions []domain.Transaction
	SharedItems  []domain.SharedItemBalance
	// Now selects the current month; zero means the current time.
	Now time.Time
}

// Summary builds the dashboard overview.
func (uc *DashboardUseCase) Summary(ctx context.Context, input DashboardInput) domain.DashboardSummary {
	start := time.Now()
	now := input.Now
	if now.IsZero() {
		now = start.UTC()
	}

	summary := domain.Summarize(input.Transactions, input.SharedItems, now)
	uc.metrics.ObserveComputation(OpDashboard, time.Since(start), nil)
	return summary
}

// BudgetInput represents budgets and the transactions spent against them.
type BudgetInput struct {
	Budgets      []domain.Budget
	Transactions []domain.Transaction
}

// BudgetProgress computes spending against every budget.
func (uc *DashboardUseCase) BudgetProgress(ctx context.Context, input BudgetInput) []domain.BudgetStatus {
	start := time.Now()
	statuses := domain.BudgetProgress(input.Budgets, input.Transactions)
	uc.metrics.ObserveComputation(OpBudgets, time.Since(start), nil)
	return statuses
}

// SavingsProgress computes progress for every goal.
func (uc *DashboardUseCase) SavingsProgress(ctx context.Context, goals []domain.SavingsGoal) []domain.SavingsStatus {
	start := time.Now()
	out := make([]domain.SavingsStatus, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.SavingsProgress(g))
	}
	uc.metrics.ObserveComputation(OpSavings, time.Since(start), nil)
	return out
}
