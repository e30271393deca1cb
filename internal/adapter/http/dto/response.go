package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// percentPlaces is the precision of percentages in responses.
const percentPlaces = 2

// AllocationResponse represents the split of a single payment.
type AllocationResponse struct {
	ToInterest  decimal.Decimal `json:"to_interest"`
	ToPrincipal decimal.Decimal `json:"to_principal"`
	Excess      decimal.Decimal `json:"excess"`
}

// AllocationFromUseCase converts an allocation result to response.
func AllocationFromUseCase(r usecase.AllocateResult) *AllocationResponse {
	return &AllocationResponse{
		ToInterest:  r.Allocation.ToInterest,
		ToPrincipal: r.Allocation.ToPrincipal,
		Excess:      r.Excess,
	}
}

// RunningTotalsResponse represents accumulated allocation totals.
type RunningTotalsResponse struct {
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	RemainingInterest  decimal.Decimal `json:"remaining_interest"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

// RunningTotalsFromDomain converts running totals to response.
func RunningTotalsFromDomain(t domain.RunningTotals) RunningTotalsResponse {
	return RunningTotalsResponse{
		TotalInterestPaid:  t.TotalInterestPaid,
		TotalPrincipalPaid: t.TotalPrincipalPaid,
		RemainingInterest:  t.RemainingInterest,
		RemainingPrincipal: t.RemainingPrincipal,
	}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID          string          `json:"id,omitempty"`
	PayerID     string          `json:"payer_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      time.Time       `json:"paid_at"`
	PeriodID    *int            `json:"period_id,omitempty"`
}

// PaymentFromDomain converts a domain payment to response.
func PaymentFromDomain(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		PayerID:     p.PayerID,
		Description: p.Description,
		Amount:      p.Amount,
		PaidAt:      p.PaidAt,
		PeriodID:    p.PeriodID,
	}
}

// AllocationStepResponse represents one payment of a breakdown.
type AllocationStepResponse struct {
	Index              int             `json:"index"`
	Payment            PaymentResponse `json:"payment"`
	ToInterest         decimal.Decimal `json:"to_interest"`
	ToPrincipal        decimal.Decimal `json:"to_principal"`
	Unallocated        decimal.Decimal `json:"unallocated"`
	RemainingInterest  decimal.Decimal `json:"remaining_interest"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

// BreakdownResponse represents a per-payment allocation breakdown.
type BreakdownResponse struct {
	ID               string                   `json:"id,omitempty"`
	Cached           bool                     `json:"cached"`
	PrincipalTarget  decimal.Decimal          `json:"principal_target"`
	InterestTarget   decimal.Decimal          `json:"interest_target"`
	Steps            []AllocationStepResponse `json:"steps"`
	Totals           RunningTotalsResponse    `json:"totals"`
	TotalPaid        decimal.Decimal          `json:"total_paid"`
	TotalUnallocated decimal.Decimal          `json:"total_unallocated"`
}

// BreakdownFromDomain converts a domain breakdown to response.
func BreakdownFromDomain(b *domain.AllocationBreakdown) *BreakdownResponse {
	steps := make([]AllocationStepResponse, len(b.Steps))
	for i, s := range b.Steps {
		steps[i] = AllocationStepResponse{
			Index:              s.Index,
			Payment:            PaymentFromDomain(s.Payment),
			ToInterest:         s.Allocation.ToInterest,
			ToPrincipal:        s.Allocation.ToPrincipal,
			Unallocated:        s.Unallocated,
			RemainingInterest:  s.RemainingInterest,
			RemainingPrincipal: s.RemainingPrincipal,
		}
	}
	return &BreakdownResponse{
		PrincipalTarget:  b.Obligation.PrincipalTarget,
		InterestTarget:   b.Obligation.InterestTarget,
		Steps:            steps,
		Totals:           RunningTotalsFromDomain(b.Totals),
		TotalPaid:        b.TotalPaid,
		TotalUnallocated: b.TotalUnallocated,
	}
}

// BreakdownFromReport converts a breakdown report to response.
func BreakdownFromReport(r *usecase.BreakdownReport) *BreakdownResponse {
	resp := BreakdownFromDomain(r.Breakdown)
	resp.ID = r.ID
	resp.Cached = r.Cached
	return resp
}

// SchedulePeriodResponse represents one schedule period.
type SchedulePeriodResponse struct {
	PeriodID  int             `json:"period_id"`
	DueDate   time.Time       `json:"due_date"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
}

// ScheduleTotalsResponse represents the column sums of a schedule.
type ScheduleTotalsResponse struct {
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Total     decimal.Decimal `json:"total"`
}

// ScheduleResponse represents a generated schedule.
type ScheduleResponse struct {
	Periods []SchedulePeriodResponse `json:"periods"`
	Totals  ScheduleTotalsResponse   `json:"totals"`
}

// SchedulePeriodFromDomain converts a domain period to response.
func SchedulePeriodFromDomain(p domain.SchedulePeriod) SchedulePeriodResponse {
	return SchedulePeriodResponse{
		PeriodID:  p.PeriodID,
		DueDate:   p.DueDate,
		Principal: p.Principal,
		Interest:  p.Interest,
		Total:     p.Total(),
	}
}

func scheduleTotalsFromDomain(t domain.ScheduleTotals) ScheduleTotalsResponse {
	return ScheduleTotalsResponse{Principal: t.Principal, Interest: t.Interest, Total: t.Total}
}

// ScheduleFromDomain converts a domain schedule to response.
func ScheduleFromDomain(s domain.Schedule) *ScheduleResponse {
	periods := make([]SchedulePeriodResponse, len(s))
	for i, p := range s {
		periods[i] = SchedulePeriodFromDomain(p)
	}
	return &ScheduleResponse{Periods: periods, Totals: scheduleTotalsFromDomain(s.Totals())}
}

// PeriodStatusResponse represents the payment state of one period.
type PeriodStatusResponse struct {
	SchedulePeriodResponse
	Paid        decimal.Decimal       `json:"paid"`
	Remaining   decimal.Decimal       `json:"remaining"`
	Overpayment decimal.Decimal       `json:"overpayment"`
	Complete    bool                  `json:"complete"`
	Payments    int                   `json:"payments"`
	Allocation  RunningTotalsResponse `json:"allocation"`
}

// ScheduleReportResponse represents a per-period schedule evaluation.
type ScheduleReportResponse struct {
	Periods          []PeriodStatusResponse `json:"periods"`
	Totals           ScheduleTotalsResponse `json:"totals"`
	TotalPaid        decimal.Decimal        `json:"total_paid"`
	TotalOverpayment decimal.Decimal        `json:"total_overpayment"`
	UnassignedPaid   decimal.Decimal        `json:"unassigned_paid"`
	CompletedPeriods int                    `json:"completed_periods"`
}

// ScheduleReportFromDomain converts a domain schedule report to response.
func ScheduleReportFromDomain(r *domain.ScheduleReport) *ScheduleReportResponse {
	periods := make([]PeriodStatusResponse, len(r.Periods))
	for i, p := range r.Periods {
		periods[i] = PeriodStatusResponse{
			SchedulePeriodResponse: SchedulePeriodFromDomain(p.Period),
			Paid:                   p.Paid,
			Remaining:              p.Remaining,
			Overpayment:            p.Overpayment,
			Complete:               p.Complete,
			Payments:               p.Payments,
			Allocation:             RunningTotalsFromDomain(p.Allocation),
		}
	}
	return &ScheduleReportResponse{
		Periods:          periods,
		Totals:           scheduleTotalsFromDomain(r.Totals),
		TotalPaid:        r.TotalPaid,
		TotalOverpayment: r.TotalOverpayment,
		UnassignedPaid:   r.UnassignedPaid,
		CompletedPeriods: r.CompletedPeriods,
	}
}

// SharedItemSummaryResponse represents the figures for one shared item.
type SharedItemSummaryResponse struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	TotalAmount      decimal.Decimal         `json:"total_amount"`
	DueDate          *time.Time              `json:"due_date,omitempty"`
	TotalPaid        decimal.Decimal         `json:"total_paid"`
	Remaining        decimal.Decimal         `json:"remaining"`
	ProgressPercent  decimal.Decimal         `json:"progress_percent"`
	PaymentCount     int                     `json:"payment_count"`
	Active           bool                    `json:"active"`
	PrincipalLeft    decimal.Decimal         `json:"principal_left"`
	InterestLeft     decimal.Decimal         `json:"interest_left"`
	TotalOverpayment decimal.Decimal         `json:"total_overpayment"`
	Breakdown        *BreakdownResponse      `json:"breakdown,omitempty"`
	Schedule         *ScheduleReportResponse `json:"schedule,omitempty"`
	Transactions     []*TransactionResponse  `json:"transactions"`
}

// SharedItemSummaryFromDomain converts a shared item summary to response.
func SharedItemSummaryFromDomain(s *domain.SharedItemSummary) *SharedItemSummaryResponse {
	resp := &SharedItemSummaryResponse{
		ID:               s.Item.ID,
		Title:            s.Item.Title,
		TotalAmount:      s.Item.TotalAmount,
		DueDate:          s.Item.DueDate,
		TotalPaid:        s.TotalPaid,
		Remaining:        s.Remaining,
		ProgressPercent:  s.ProgressPercent.Round(percentPlaces),
		PaymentCount:     s.PaymentCount,
		Active:           s.Active(),
		PrincipalLeft:    s.PrincipalLeft,
		InterestLeft:     s.InterestLeft,
		TotalOverpayment: s.TotalOverpayment,
		Transactions:     make([]*TransactionResponse, len(s.Transactions)),
	}
	for i, t := range s.Transactions {
		resp.Transactions[i] = TransactionFromDomain(t)
	}
	if s.Breakdown != nil {
		resp.Breakdown = BreakdownFromDomain(s.Breakdown)
	}
	if s.Schedule != nil {
		resp.Schedule = ScheduleReportFromDomain(s.Schedule)
	}
	return resp
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

// CategoryAmountResponse represents an amount per category.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthFlowResponse represents income and expense for one month.
type MonthFlowResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// SharedTotalsResponse represents totals over all shared items.
type SharedTotalsResponse struct {
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Active    int             `json:"active"`
}

// DashboardResponse represents the dashboard overview.
type DashboardResponse struct {
	Income        decimal.Decimal          `json:"income"`
	Expenses      decimal.Decimal          `json:"expenses"`
	Balance       decimal.Decimal          `json:"balance"`
	Shared        SharedTotalsResponse     `json:"shared"`
	TopCategories []CategoryAmountResponse `json:"top_categories"`
	Monthly       []MonthFlowResponse      `json:"monthly"`
	CurrentMonth  MonthFlowResponse        `json:"current_month"`
}

func monthFlowFromDomain(m domain.MonthFlow) MonthFlowResponse {
	return MonthFlowResponse{Month: m.Month, Income: m.Income, Expenses: m.Expenses, Balance: m.Balance}
}

// DashboardFromDomain converts a dashboard summary to response.
func DashboardFromDomain(s domain.DashboardSummary) *DashboardResponse {
	top := make([]CategoryAmountResponse, len(s.TopCategories))
	for i, c := range s.TopCategories {
		top[i] = CategoryAmountResponse{Category: c.Category, Amount: c.Amount}
	}
	monthly := make([]MonthFlowResponse, len(s.Monthly))
	for i, m := range s.Monthly {
		monthly[i] = monthFlowFromDomain(m)
	}

	return &DashboardResponse{
		Income:   s.Income,
		Expenses: s.Expenses,
		Balance:  s.Balance,
		Shared: SharedTotalsResponse{
			Total:     s.Shared.Total,
			Paid:      s.Shared.Paid,
			Remaining: s.Shared.Remaining,
			Active:    s.Shared.Active,
		},
		TopCategories: top,
		Monthly:       monthly,
		CurrentMonth:  monthFlowFromDomain(s.CurrentMonth),
	}
}

// BudgetStatusResponse represents spending against one budget.
type BudgetStatusResponse struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Percent    decimal.Decimal `json:"percent"`
	Left       decimal.Decimal `json:"left"`
	OverBy     decimal.Decimal `json:"over_by"`
	OverBudget bool            `json:"over_budget"`
	Warning    bool            `json:"warning"`
}

// BudgetStatusesFromDomain converts budget statuses to responses.
func BudgetStatusesFromDomain(statuses []domain.BudgetStatus) []BudgetStatusResponse {
	out := make([]BudgetStatusResponse, len(statuses))
	for i, s := range statuses {
		out[i] = BudgetStatusResponse{
			ID:         s.Budget.ID,
			Category:   s.Budget.Category,
			Month:      s.Budget.Month.Format(MonthLayout),
			Amount:     s.Budget.Amount,
			Spent:      s.Spent,
			Percent:    s.Percent.Round(percentPlaces),
			Left:       s.Left,
			OverBy:     s.OverBy,
			OverBudget: s.OverBudget,
			Warning:    s.Warning,
		}
	}
	return out
}

// SavingsStatusResponse represents progress toward one savings goal.
type SavingsStatusResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Percent       decimal.Decimal `json:"percent"`
	Remaining     decimal.Decimal `json:"remaining"`
	Achieved      bool            `json:"achieved"`
}

// SavingsStatusesFromDomain converts savings statuses to responses.
func SavingsStatusesFromDomain(statuses []domain.SavingsStatus) []SavingsStatusResponse {
	out := make([]SavingsStatusResponse, len(statuses))
	for i, s := range statuses {
		out[i] = SavingsStatusResponse{
			ID:            s.Goal.ID,
			Name:          s.Goal.Name,
			TargetAmount:  s.Goal.TargetAmount,
			CurrentAmount: s.Goal.CurrentAmount,
			Deadline:      s.Goal.Deadline,
			Percent:       s.Percent.Round(percentPlaces),
			Remaining:     s.Remaining,
			Achieved:      s.Achieved,
		}
	}
	return out
}

// OccurrencesResponse lists upcoming occurrences of a template.
type OccurrencesResponse struct {
	TemplateID  string      `json:"template_id,omitempty"`
	Occurrences []time.Time `json:"occurrences"`
}

// RecurringDueResponse reports whether a template is due.
type RecurringDueResponse struct {
	TemplateID  string               `json:"template_id,omitempty"`
	Due         bool                 `json:"due"`
	Occurrence  *time.Time           `json:"occurrence,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// RecurringDueFromUseCase converts a due result to response.
func RecurringDueFromUseCase(templateID string, r *usecase.DueResult) *RecurringDueResponse {
	resp := &RecurringDueResponse{TemplateID: templateID, Due: r.Due}
	if r.Due {
		occurrence := r.Occurrence
		resp.Occurrence = &occurrence
	}
	if r.Transaction != nil {
		resp.Transaction = TransactionFromDomain(*r.Transaction)
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
