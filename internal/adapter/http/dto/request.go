package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// DefaultOccurrenceCount is used when a next-occurrences request omits count.
const DefaultOccurrenceCount = 5

// MonthLayout is the format of budget months.
const MonthLayout = "2006-01"

// AllocateRequest represents a single payment against remaining balances.
type AllocateRequest struct {
	Payment            decimal.Decimal `json:"payment"`
	RemainingInterest  decimal.Decimal `json:"remaining_interest"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocateRequest) ToUseCaseInput() usecase.AllocateInput {
	return usecase.AllocateInput{
		Payment:            r.Payment,
		RemainingInterest:  r.RemainingInterest,
		RemainingPrincipal: r.RemainingPrincipal,
	}
}

// AccumulateRequest represents ordered payment amounts against targets.
type AccumulateRequest struct {
	PrincipalTarget decimal.Decimal   `json:"principal_target"`
	InterestTarget  decimal.Decimal   `json:"interest_target"`
	Payments        []decimal.Decimal `json:"payments"`
}

// ToUseCaseInput converts to use case input.
func (r *AccumulateRequest) ToUseCaseInput() usecase.AccumulateInput {
	return usecase.AccumulateInput{
		PrincipalTarget: r.PrincipalTarget,
		InterestTarget:  r.InterestTarget,
		Payments:        r.Payments,
	}
}

// ObligationRequest represents principal and interest targets.
type ObligationRequest struct {
	PrincipalTarget decimal.Decimal `json:"principal_target"`
	InterestTarget  decimal.Decimal `json:"interest_target"`
}

// ToDomain converts to a domain obligation.
func (r ObligationRequest) ToDomain() domain.Obligation {
	return domain.Obligation{PrincipalTarget: r.PrincipalTarget, InterestTarget: r.InterestTarget}
}

// PaymentRequest represents one payment.
type PaymentRequest struct {
	ID          string          `json:"id,omitempty"`
	PayerID     string          `json:"payer_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	PaidAt      time.Time       `json:"paid_at"`
	PeriodID    *int            `json:"period_id,omitempty"`
}

// PaymentsToDomain converts payment requests to domain payments.
func PaymentsToDomain(payments []PaymentRequest) []domain.Payment {
	out := make([]domain.Payment, len(payments))
	for i, p := range payments {
		out[i] = domain.Payment{
			ID:          p.ID,
			PayerID:     p.PayerID,
			Description: p.Description,
			Amount:      p.Amount,
			PaidAt:      p.PaidAt,
			PeriodID:    p.PeriodID,
		}
	}
	return out
}

// BreakdownRequest represents payments applied to an obligation.
type BreakdownRequest struct {
	Obligation ObligationRequest `json:"obligation"`
	Payments   []PaymentRequest  `json:"payments"`
}

// ToUseCaseInput converts to use case input.
func (r *BreakdownRequest) ToUseCaseInput() usecase.BreakdownInput {
	return usecase.BreakdownInput{
		Obligation: r.Obligation.ToDomain(),
		Payments:   PaymentsToDomain(r.Payments),
	}
}

// SchedulePeriodRequest represents one schedule period.
type SchedulePeriodRequest struct {
	PeriodID  int             `json:"period_id"`
	DueDate   time.Time       `json:"due_date"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// ScheduleToDomain converts period requests to a domain schedule.
func ScheduleToDomain(periods []SchedulePeriodRequest) domain.Schedule {
	if len(periods) == 0 {
		return nil
	}
	out := make(domain.Schedule, len(periods))
	for i, p := range periods {
		out[i] = domain.SchedulePeriod{
			PeriodID:  p.PeriodID,
			DueDate:   p.DueDate,
			Principal: p.Principal,
			Interest:  p.Interest,
		}
	}
	return out
}

// EvaluateScheduleRequest represents a schedule and the payments tagged to it.
type EvaluateScheduleRequest struct {
	Schedule   []SchedulePeriodRequest `json:"schedule"`
	Payments   []PaymentRequest        `json:"payments"`
	Obligation *ObligationRequest      `json:"obligation,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *EvaluateScheduleRequest) ToUseCaseInput() usecase.EvaluateScheduleInput {
	input := usecase.EvaluateScheduleInput{
		Schedule: ScheduleToDomain(r.Schedule),
		Payments: PaymentsToDomain(r.Payments),
	}
	if r.Obligation != nil {
		o := r.Obligation.ToDomain()
		input.Obligation = &o
	}
	return input
}

// GenerateScheduleRequest represents loan terms.
type GenerateScheduleRequest struct {
	Principal     decimal.Decimal `json:"principal"`
	AnnualRateBps int             `json:"annual_rate_bps"`
	TermMonths    int             `json:"term_months"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GenerateScheduleRequest) ToUseCaseInput() usecase.GenerateScheduleInput {
	input := usecase.GenerateScheduleInput{
		Principal:     r.Principal,
		AnnualRateBps: r.AnnualRateBps,
		TermMonths:    r.TermMonths,
	}
	if r.StartDate != nil {
		input.StartDate = *r.StartDate
	}
	return input
}

// ScheduleEditRequest represents one schedule edit: append, remove or update.
type ScheduleEditRequest struct {
	Op     string                `json:"op"`
	Index  int                   `json:"index,omitempty"`
	Period SchedulePeriodRequest `json:"period"`
}

// EditScheduleRequest represents a schedule and the edits to apply in order.
type EditScheduleRequest struct {
	Schedule []SchedulePeriodRequest `json:"schedule"`
	Edits    []ScheduleEditRequest   `json:"edits"`
}

// ToUseCaseInput converts to use case input.
func (r *EditScheduleRequest) ToUseCaseInput() usecase.EditScheduleInput {
	edits := make([]domain.ScheduleEdit, len(r.Edits))
	for i, e := range r.Edits {
		edits[i] = domain.ScheduleEdit{
			Op:    domain.ScheduleEditOp(e.Op),
			Index: e.Index,
			Period: domain.SchedulePeriod{
				PeriodID:  e.Period.PeriodID,
				DueDate:   e.Period.DueDate,
				Principal: e.Period.Principal,
				Interest:  e.Period.Interest,
			},
		}
	}
	return usecase.EditScheduleInput{
		Schedule: ScheduleToDomain(r.Schedule),
		Edits:    edits,
	}
}

// SharedItemRequest represents a shared item.
type SharedItemRequest struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
	CreatedBy   string                  `json:"created_by,omitempty"`
	Obligation  *ObligationRequest      `json:"obligation,omitempty"`
	Schedule    []SchedulePeriodRequest `json:"schedule,omitempty"`
}

// ToDomain converts to a domain shared item. A schedule without an explicit
// obligation derives the obligation and total amount from its sums.
func (r SharedItemRequest) ToDomain() (domain.SharedItem, error) {
	if err := domain.ValidateTitle(r.Title); err != nil {
		return domain.SharedItem{}, err
	}

	item := domain.SharedItem{
		ID:          r.ID,
		Title:       r.Title,
		TotalAmount: r.TotalAmount,
		DueDate:     r.DueDate,
		CreatedBy:   r.CreatedBy,
	}
	if r.Obligation != nil {
		o := r.Obligation.ToDomain()
		item.Obligation = &o
	}

	schedule := ScheduleToDomain(r.Schedule)
	if len(schedule) == 0 {
		return item, nil
	}
	if item.Obligation == nil {
		return item.ApplySchedule(schedule)
	}
	item.Schedule = schedule
	return item, nil
}

// SharedItemSummaryRequest represents a shared item and its payments.
type SharedItemSummaryRequest struct {
	Item     SharedItemRequest `json:"item"`
	Payments []PaymentRequest  `json:"payments"`
}

// ToUseCaseInput converts to use case input.
func (r *SharedItemSummaryRequest) ToUseCaseInput() (usecase.SharedItemInput, error) {
	item, err := r.Item.ToDomain()
	if err != nil {
		return usecase.SharedItemInput{}, err
	}
	return usecase.SharedItemInput{Item: item, Payments: PaymentsToDomain(r.Payments)}, nil
}

// TransactionRequest represents one income or expense record.
type TransactionRequest struct {
	ID          string          `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

// TransactionsToDomain converts transaction requests, validating their types.
func TransactionsToDomain(txs []TransactionRequest) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, len(txs))
	for i, t := range txs {
		typ, err := domain.ParseTransactionType(t.Type)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		out[i] = domain.Transaction{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        typ,
			Category:    t.Category,
			Description: t.Description,
			Date:        t.Date,
		}
	}
	return out, nil
}

// SharedBalanceRequest is the minimal view of a shared item for dashboard totals.
type SharedBalanceRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
}

// DashboardRequest represents the data the dashboard overview is computed from.
type DashboardRequest struct {
	Transactions []TransactionRequest   `json:"transactions"`
	SharedItems  []SharedBalanceRequest `json:"shared_items"`
	Now          *time.Time             `json:"now,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DashboardRequest) ToUseCaseInput() (usecase.DashboardInput, error) {
	txs, err := TransactionsToDomain(r.Transactions)
	if err != nil {
		return usecase.DashboardInput{}, err
	}

	shared := make([]domain.SharedItemBalance, len(r.SharedItems))
	for i, s := range r.SharedItems {
		shared[i] = domain.SharedItemBalance{
			ID:          s.ID,
			Title:       s.Title,
			TotalAmount: s.TotalAmount,
			TotalPaid:   s.TotalPaid,
		}
	}

	input := usecase.DashboardInput{Transactions: txs, SharedItems: shared}
	if r.Now != nil {
		input.Now = *r.Now
	}
	return input, nil
}

// BudgetRequest represents a monthly category budget. Month is YYYY-MM.
type BudgetRequest struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
}

// BudgetProgressRequest represents budgets and the transactions spent against them.
type BudgetProgressRequest struct {
	Budgets      []BudgetRequest      `json:"budgets"`
	Transactions []TransactionRequest `json:"transactions"`
}

// ToUseCaseInput converts to use case input.
func (r *BudgetProgressRequest) ToUseCaseInput() (usecase.BudgetInput, error) {
	budgets := make([]domain.Budget, len(r.Budgets))
	for i, b := range r.Budgets {
		month, err := time.Parse(MonthLayout, b.Month)
		if err != nil {
			return usecase.BudgetInput{}, fmt.Errorf("budget %d: month must be YYYY-MM: %w", i, err)
		}
		budgets[i] = domain.Budget{ID: b.ID, Category: b.Category, Month: month, Amount: b.Amount}
	}

	txs, err := TransactionsToDomain(r.Transactions)
	if err != nil {
		return usecase.BudgetInput{}, err
	}
	return usecase.BudgetInput{Budgets: budgets, Transactions: txs}, nil
}

// SavingsGoalRequest represents a savings goal.
type SavingsGoalRequest struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
}

// SavingsProgressRequest represents a list of savings goals.
type SavingsProgressRequest struct {
	Goals []SavingsGoalRequest `json:"goals"`
}

// ToDomain converts to domain goals.
func (r *SavingsProgressRequest) ToDomain() []domain.SavingsGoal {
	out := make([]domain.SavingsGoal, len(r.Goals))
	for i, g := range r.Goals {
		out[i] = domain.SavingsGoal{
			ID:            g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Deadline:      g.Deadline,
		}
	}
	return out
}

// RecurringTemplateRequest represents a recurring transaction template.
type RecurringTemplateRequest struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Frequency   string          `json:"frequency"`
	StartDate   time.Time       `json:"start_date"`
	// Active defaults to true when omitted.
	Active *bool `json:"active,omitempty"`
}

// ToDomain converts to a domain template.
func (r RecurringTemplateRequest) ToDomain() (domain.RecurringTemplate, error) {
	frequency, err := domain.ParseFrequency(r.Frequency)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}
	typ, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return domain.RecurringTemplate{}, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return domain.RecurringTemplate{
		ID:          r.ID,
		Amount:      r.Amount,
		Type:        typ,
		Category:    r.Category,
		Description: r.Description,
		Frequency:   frequency,
		StartDate:   r.StartDate,
		Active:      active,
	}, nil
}

// NextOccurrencesRequest asks for upcoming occurrences of a template.
type NextOccurrencesRequest struct {
	Template RecurringTemplateRequest `json:"template"`
	After    *time.Time               `json:"after,omitempty"`
	Count    int                      `json:"count,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing after means now.
func (r *NextOccurrencesRequest) ToUseCaseInput() (usecase.NextOccurrencesInput, error) {
	tmpl, err := r.Template.ToDomain()
	if err != nil {
		return usecase.NextOccurrencesInput{}, err
	}

	input := usecase.NextOccurrencesInput{Template: tmpl, After: time.Now().UTC(), Count: r.Count}
	if r.After != nil {
		input.After = *r.After
	}
	if input.Count == 0 {
		input.Count = DefaultOccurrenceCount
	}
	return input, nil
}

// RecurringDueRequest asks whether a template is due.
type RecurringDueRequest struct {
	Template RecurringTemplateRequest `json:"template"`
	LastRun  *time.Time               `json:"last_run,omitempty"`
	Now      *time.Time               `json:"now,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecurringDueRequest) ToUseCaseInput() (usecase.DueInput, error) {
	tmpl, err := r.Template.ToDomain()
	if err != nil {
		return usecase.DueInput{}, err
	}

	input := usecase.DueInput{Template: tmpl}
	if r.LastRun != nil {
		input.LastRun = *r.LastRun
	}
	if r.Now != nil {
		input.Now = *r.Now
	}
	return input, nil
}
