package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBreakdownFromReport(t *testing.T) {
	payments := domain.NewPaymentSequence([]domain.Payment{
		{ID: "p1", Amount: d("60"), PaidAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p2", Amount: d("100"), PaidAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	})
	breakdown, err := domain.Breakdown(payments, domain.Obligation{PrincipalTarget: d("100"), InterestTarget: d("50")})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	resp := BreakdownFromReport(&usecase.BreakdownReport{ID: "rep-1", Breakdown: breakdown, Cached: true})
	if resp.ID != "rep-1" || !resp.Cached {
		t.Fatalf("unexpected header %+v", resp)
	}
	if len(resp.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(resp.Steps))
	}
	first := resp.Steps[0]
	if first.Payment.ID != "p1" || !first.ToInterest.Equal(d("50")) || !first.ToPrincipal.Equal(d("10")) {
		t.Fatalf("unexpected first step %+v", first)
	}
	if !resp.TotalUnallocated.Equal(d("10")) {
		t.Fatalf("total unallocated = %s, want 10", resp.TotalUnallocated)
	}
	if !resp.Totals.RemainingPrincipal.IsZero() {
		t.Fatalf("remaining principal = %s, want 0", resp.Totals.RemainingPrincipal)
	}
}

func TestScheduleFromDomain(t *testing.T) {
	schedule := domain.Schedule{
		{PeriodID: 1, Principal: d("100"), Interest: d("10")},
		{PeriodID: 2, Principal: d("100"), Interest: d("5")},
	}

	resp := ScheduleFromDomain(schedule)
	if len(resp.Periods) != 2 || !resp.Periods[0].Total.Equal(d("110")) {
		t.Fatalf("unexpected periods %+v", resp.Periods)
	}
	if !resp.Totals.Total.Equal(d("215")) {
		t.Fatalf("total = %s, want 215", resp.Totals.Total)
	}
}

func TestSharedItemSummaryFromDomain_RoundsPercent(t *testing.T) {
	summary := &domain.SharedItemSummary{
		Item:            domain.SharedItem{ID: "s1", Title: "Rent", TotalAmount: d("300")},
		TotalPaid:       d("100"),
		Remaining:       d("200"),
		ProgressPercent: d("33.333333"),
		PaymentCount:    1,
	}

	resp := SharedItemSummaryFromDomain(summary)
	if !resp.ProgressPercent.Equal(d("33.33")) {
		t.Fatalf("progress = %s, want 33.33", resp.ProgressPercent)
	}
	if !resp.Active || resp.Breakdown != nil || resp.Schedule != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestDashboardFromDomain(t *testing.T) {
	summary := domain.Summarize(
		[]domain.Transaction{
			{Amount: d("500"), Type: domain.TransactionIncome, Category: "Salary", Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)},
			{Amount: d("-120"), Type: domain.TransactionExpense, Category: "Food", Date: time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)},
		},
		nil,
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	)

	resp := DashboardFromDomain(summary)
	if !resp.Balance.Equal(d("380")) {
		t.Fatalf("balance = %s, want 380", resp.Balance)
	}
	if resp.CurrentMonth.Month != "2025-04" {
		t.Fatalf("current month = %q", resp.CurrentMonth.Month)
	}
	if len(resp.TopCategories) != 1 || resp.TopCategories[0].Category != "Food" {
		t.Fatalf("top categories = %+v", resp.TopCategories)
	}
}

func TestBudgetStatusesFromDomain_FormatsMonth(t *testing.T) {
	statuses := []domain.BudgetStatus{{
		Budget:  domain.Budget{ID: "b1", Category: "Food", Month: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Amount: d("300")},
		Spent:   d("100"),
		Percent: d("33.3333"),
		Left:    d("200"),
	}}

	resp := BudgetStatusesFromDomain(statuses)
	if resp[0].Month != "2025-05" || !resp[0].Percent.Equal(d("33.33")) {
		t.Fatalf("unexpected status %+v", resp[0])
	}
}

func TestRecurringDueFromUseCase(t *testing.T) {
	notDue := RecurringDueFromUseCase("rent", &usecase.DueResult{})
	if notDue.Due || notDue.Occurrence != nil || notDue.Transaction != nil {
		t.Fatalf("unexpected not-due response %+v", notDue)
	}

	at := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	tx := domain.Transaction{ID: "tx-1", Amount: d("1200"), Type: domain.TransactionExpense, Category: "Rent", Date: at}
	due := RecurringDueFromUseCase("rent", &usecase.DueResult{Due: true, Occurrence: at, Transaction: &tx})
	if !due.Due || due.Occurrence == nil || !due.Occurrence.Equal(at) {
		t.Fatalf("unexpected due response %+v", due)
	}
	if due.Transaction == nil || due.Transaction.Type != "expense" {
		t.Fatalf("transaction = %+v", due.Transaction)
	}
}

func TestAllocationResponse_MarshalsDecimalsAsStrings(t *testing.T) {
	resp := AllocationFromUseCase(usecase.AllocateResult{
		Allocation: domain.Allocation{ToInterest: d("10"), ToPrincipal: d("5.5")},
		Excess:     decimal.Zero,
	})

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"to_principal":"5.5"`) {
		t.Fatalf("unexpected body %s", body)
	}
}
