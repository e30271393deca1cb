package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

type sharedItemServiceStub struct {
	summarizeFn func(ctx context.Context, input usecase.SharedItemInput) (*domain.SharedItemSummary, error)
}

func (s *sharedItemServiceStub) SummarizeSharedItem(ctx context.Context, input usecase.SharedItemInput) (*domain.SharedItemSummary, error) {
	return s.summarizeFn(ctx, input)
}

func summarizeWithDomain(ctx context.Context, input usecase.SharedItemInput) (*domain.SharedItemSummary, error) {
	return domain.SummarizeSharedItem(input.Item, input.Payments)
}

func TestSharedItemHandler_Summary(t *testing.T) {
	handler := NewSharedItemHandler(&sharedItemServiceStub{summarizeFn: summarizeWithDomain})

	body := `{
		"item": {"id": "s1", "title": "Flat deposit", "total_amount": "900"},
		"payments": [
			{"payer_id": "alice", "amount": "300", "paid_at": "2025-03-01T00:00:00Z"},
			{"payer_id": "bob", "amount": "150", "paid_at": "2025-03-02T00:00:00Z"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared-items/summary", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SharedItemSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.TotalPaid.Equal(decimal.NewFromInt(450)) || !resp.ProgressPercent.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected summary %+v", resp)
	}
	if !resp.Active || resp.PaymentCount != 2 {
		t.Fatalf("unexpected summary %+v", resp)
	}
	if len(resp.Transactions) != 2 || resp.Transactions[0].Type != "expense" || !resp.Transactions[0].Amount.Equal(decimal.NewFromInt(-300)) {
		t.Fatalf("unexpected transactions %+v", resp.Transactions)
	}
}

func TestSharedItemHandler_Summary_WithSchedule(t *testing.T) {
	handler := NewSharedItemHandler(&sharedItemServiceStub{summarizeFn: summarizeWithDomain})

	body := `{
		"item": {
			"id": "s2",
			"title": "Car loan",
			"schedule": [
				{"period_id": 1, "principal": "100", "interest": "10"},
				{"period_id": 2, "principal": "100", "interest": "5"}
			]
		},
		"payments": [{"amount": "110", "paid_at": "2025-01-10T00:00:00Z", "period_id": 1}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared-items/summary", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SharedItemSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.TotalAmount.Equal(decimal.NewFromInt(215)) {
		t.Fatalf("expected total derived from schedule, got %s", resp.TotalAmount)
	}
	if resp.Breakdown == nil || resp.Schedule == nil {
		t.Fatalf("expected breakdown and schedule report, got %+v", resp)
	}
	if resp.Schedule.CompletedPeriods != 1 {
		t.Fatalf("expected 1 completed period, got %d", resp.Schedule.CompletedPeriods)
	}
}

func TestSharedItemHandler_Summary_InvalidTitle(t *testing.T) {
	handler := NewSharedItemHandler(&sharedItemServiceStub{
		summarizeFn: func(ctx context.Context, input usecase.SharedItemInput) (*domain.SharedItemSummary, error) {
			t.Fatal("SummarizeSharedItem should not be called for an invalid item")
			return nil, nil
		},
	})

	body := `{"item": {"id": "s3", "title": "", "total_amount": "10"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared-items/summary", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSharedItemHandler_Summary_NegativePayment(t *testing.T) {
	handler := NewSharedItemHandler(&sharedItemServiceStub{summarizeFn: summarizeWithDomain})

	body := `{
		"item": {"id": "s4", "title": "Dinner", "total_amount": "90"},
		"payments": [{"amount": "-10", "paid_at": "2025-03-01T00:00:00Z"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shared-items/summary", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
