package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
)

func TestAllocateRequest_DecodesStringsAndNumbers(t *testing.T) {
	var req AllocateRequest
	body := `{"payment":"150.50","remaining_interest":100,"remaining_principal":"1000"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	input := req.ToUseCaseInput()
	if !input.Payment.Equal(decimal.RequireFromString("150.50")) {
		t.Fatalf("payment = %s", input.Payment)
	}
	if !input.RemainingInterest.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("remaining interest = %s", input.RemainingInterest)
	}
	if !input.RemainingPrincipal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("remaining principal = %s", input.RemainingPrincipal)
	}
}

func TestBreakdownRequest_ToUseCaseInput(t *testing.T) {
	period := 2
	paidAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	req := &BreakdownRequest{
		Obligation: ObligationRequest{
			PrincipalTarget: decimal.NewFromInt(1000),
			InterestTarget:  decimal.NewFromInt(50),
		},
		Payments: []PaymentRequest{
			{ID: "p1", PayerID: "alice", Amount: decimal.NewFromInt(200), PaidAt: paidAt, PeriodID: &period},
		},
	}

	input := req.ToUseCaseInput()
	if !input.Obligation.PrincipalTarget.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("principal target = %s", input.Obligation.PrincipalTarget)
	}
	if len(input.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(input.Payments))
	}
	p := input.Payments[0]
	if p.ID != "p1" || p.PayerID != "alice" || !p.PaidAt.Equal(paidAt) {
		t.Fatalf("unexpected payment %+v", p)
	}
	if p.PeriodID == nil || *p.PeriodID != 2 {
		t.Fatalf("period id = %v", p.PeriodID)
	}
}

func TestEvaluateScheduleRequest_ToUseCaseInput(t *testing.T) {
	req := &EvaluateScheduleRequest{
		Schedule: []SchedulePeriodRequest{
			{PeriodID: 1, Principal: decimal.NewFromInt(100), Interest: decimal.NewFromInt(10)},
		},
	}

	input := req.ToUseCaseInput()
	if len(input.Schedule) != 1 || input.Obligation != nil {
		t.Fatalf("unexpected input %+v", input)
	}

	req.Obligation = &ObligationRequest{PrincipalTarget: decimal.NewFromInt(100), InterestTarget: decimal.NewFromInt(10)}
	input = req.ToUseCaseInput()
	if input.Obligation == nil || !input.Obligation.InterestTarget.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("obligation = %+v", input.Obligation)
	}
}

func TestGenerateScheduleRequest_ToUseCaseInput(t *testing.T) {
	req := &GenerateScheduleRequest{Principal: decimal.NewFromInt(1200), AnnualRateBps: 500, TermMonths: 12}
	if input := req.ToUseCaseInput(); !input.StartDate.IsZero() {
		t.Fatalf("start date = %s, want zero", input.StartDate)
	}

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	req.StartDate = &start
	if input := req.ToUseCaseInput(); !input.StartDate.Equal(start) {
		t.Fatalf("start date = %s, want %s", input.StartDate, start)
	}
}

func TestSharedItemRequest_ToDomain(t *testing.T) {
	schedule := []SchedulePeriodRequest{
		{PeriodID: 1, Principal: decimal.NewFromInt(500), Interest: decimal.NewFromInt(20)},
		{PeriodID: 2, Principal: decimal.NewFromInt(500), Interest: decimal.NewFromInt(10)},
	}

	tests := []struct {
		name          string
		request       SharedItemRequest
		wantErr       error
		wantPrincipal string
		wantInterest  string
		wantTotal     string
		wantSchedule  int
	}{
		{
			name:      "plain item",
			request:   SharedItemRequest{ID: "s1", Title: "Groceries", TotalAmount: decimal.NewFromInt(90)},
			wantTotal: "90",
		},
		{
			name:          "schedule derives obligation",
			request:       SharedItemRequest{ID: "s2", Title: "Car", Schedule: schedule},
			wantPrincipal: "1000",
			wantInterest:  "30",
			wantTotal:     "1030",
			wantSchedule:  2,
		},
		{
			name: "explicit obligation kept",
			request: SharedItemRequest{
				ID:          "s3",
				Title:       "Car",
				TotalAmount: decimal.NewFromInt(1030),
				Obligation:  &ObligationRequest{PrincipalTarget: decimal.NewFromInt(1000), InterestTarget: decimal.NewFromInt(30)},
				Schedule:    schedule,
			},
			wantPrincipal: "1000",
			wantInterest:  "30",
			wantTotal:     "1030",
			wantSchedule:  2,
		},
		{
			name:    "blank title",
			request: SharedItemRequest{ID: "s4", Title: "  "},
			wantErr: domain.ErrInvalidTitle,
		},
		{
			name:    "title too long",
			request: SharedItemRequest{ID: "s5", Title: strings.Repeat("x", domain.MaxTitleLength+1)},
			wantErr: domain.ErrInvalidTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := tt.request.ToDomain()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !item.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Fatalf("total amount = %s, want %s", item.TotalAmount, tt.wantTotal)
			}
			if len(item.Schedule) != tt.wantSchedule {
				t.Fatalf("schedule length = %d, want %d", len(item.Schedule), tt.wantSchedule)
			}
			if tt.wantPrincipal == "" {
				if item.Obligation != nil {
					t.Fatalf("obligation = %+v, want nil", item.Obligation)
				}
				return
			}
			if item.Obligation == nil {
				t.Fatal("obligation is nil")
			}
			if !item.Obligation.PrincipalTarget.Equal(decimal.RequireFromString(tt.wantPrincipal)) ||
				!item.Obligation.InterestTarget.Equal(decimal.RequireFromString(tt.wantInterest)) {
				t.Fatalf("obligation = %+v", item.Obligation)
			}
		})
	}
}

func TestTransactionsToDomain(t *testing.T) {
	txs, err := TransactionsToDomain([]TransactionRequest{
		{ID: "t1", Amount: decimal.NewFromInt(100), Type: "income", Category: "Salary"},
		{ID: "t2", Amount: decimal.NewFromInt(-40), Type: "expense", Category: "Food"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txs[0].Type != domain.TransactionIncome || txs[1].Type != domain.TransactionExpense {
		t.Fatalf("unexpected types %q %q", txs[0].Type, txs[1].Type)
	}

	_, err = TransactionsToDomain([]TransactionRequest{{Type: "transfer"}})
	if !errors.Is(err, domain.ErrUnknownTransactionType) {
		t.Fatalf("expected ErrUnknownTransactionType, got %v", err)
	}
}

func TestBudgetProgressRequest_ToUseCaseInput(t *testing.T) {
	req := &BudgetProgressRequest{
		Budgets: []BudgetRequest{{ID: "b1", Category: "Food", Month: "2025-05", Amount: decimal.NewFromInt(200)}},
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if !input.Budgets[0].Month.Equal(want) {
		t.Fatalf("month = %s, want %s", input.Budgets[0].Month, want)
	}

	req.Budgets[0].Month = "May 2025"
	if _, err := req.ToUseCaseInput(); err == nil {
		t.Fatal("expected error for malformed month")
	}
}

func TestRecurringTemplateRequest_ToDomain(t *testing.T) {
	req := RecurringTemplateRequest{
		ID:        "rent",
		Amount:    decimal.NewFromInt(1200),
		Type:      "expense",
		Category:  "Rent",
		Frequency: "monthly",
		StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	tmpl, err := req.ToDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tmpl.Active {
		t.Fatal("omitted active should default to true")
	}
	if tmpl.Frequency != domain.FrequencyMonthly {
		t.Fatalf("frequency = %q", tmpl.Frequency)
	}

	inactive := false
	req.Active = &inactive
	if tmpl, _ = req.ToDomain(); tmpl.Active {
		t.Fatal("explicit active=false was ignored")
	}

	req.Frequency = "hourly"
	if _, err := req.ToDomain(); !errors.Is(err, domain.ErrUnknownFrequency) {
		t.Fatalf("expected ErrUnknownFrequency, got %v", err)
	}
}

func TestNextOccurrencesRequest_Defaults(t *testing.T) {
	req := &NextOccurrencesRequest{
		Template: RecurringTemplateRequest{Type: "expense", Frequency: "weekly", StartDate: time.Now()},
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Count != DefaultOccurrenceCount {
		t.Fatalf("count = %d, want %d", input.Count, DefaultOccurrenceCount)
	}
	if input.After.IsZero() {
		t.Fatal("after should default to now")
	}
}

func TestRecurringDueRequest_ToUseCaseInput(t *testing.T) {
	lastRun := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &RecurringDueRequest{
		Template: RecurringTemplateRequest{Type: "income", Frequency: "daily", StartDate: lastRun},
		LastRun:  &lastRun,
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !input.LastRun.Equal(lastRun) || !input.Now.IsZero() {
		t.Fatalf("unexpected input %+v", input)
	}
}
