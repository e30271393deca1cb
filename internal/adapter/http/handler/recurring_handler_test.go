package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/usecase"
)

type recurringServiceStub struct {
	nextFn func(ctx context.Context, input usecase.NextOccurrencesInput) ([]time.Time, error)
	dueFn  func(ctx context.Context, input usecase.DueInput) (*usecase.DueResult, error)
}

func (s *recurringServiceStub) Next(ctx context.Context, input usecase.NextOccurrencesInput) ([]time.Time, error) {
	return s.nextFn(ctx, input)
}

func (s *recurringServiceStub) Due(ctx context.Context, input usecase.DueInput) (*usecase.DueResult, error) {
	return s.dueFn(ctx, input)
}

func TestRecurringHandler_Next(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		nextFn: func(ctx context.Context, input usecase.NextOccurrencesInput) ([]time.Time, error) {
			return input.Template.NextOccurrences(input.After, input.Count)
		},
	})

	body := `{
		"template": {"id": "rent", "amount": "1200", "type": "expense", "category": "Rent",
			"frequency": "monthly", "start_date": "2025-01-31T00:00:00Z"},
		"after": "2025-01-31T00:00:00Z",
		"count": 3
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recurring/next", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Next(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.OccurrencesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TemplateID != "rent" || len(resp.Occurrences) != 3 {
		t.Fatalf("unexpected occurrences %+v", resp)
	}
	if got := resp.Occurrences[0]; got.Month() != time.February || got.Day() != 28 {
		t.Fatalf("expected February to clamp to the 28th, got %s", got)
	}
}

func TestRecurringHandler_Next_UnknownFrequency(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		nextFn: func(ctx context.Context, input usecase.NextOccurrencesInput) ([]time.Time, error) {
			t.Fatal("Next should not be called for an invalid template")
			return nil, nil
		},
	})

	body := `{"template": {"type": "expense", "frequency": "fortnightly", "start_date": "2025-01-01T00:00:00Z"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recurring/next", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Next(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecurringHandler_Due(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		dueFn: func(ctx context.Context, input usecase.DueInput) (*usecase.DueResult, error) {
			due, err := input.Template.IsDue(input.LastRun, input.Now)
			if err != nil || !due {
				return &usecase.DueResult{}, err
			}
			at := input.Now.Truncate(24 * time.Hour)
			tx := input.Template.Transaction(at)
			tx.ID = "tx-1"
			return &usecase.DueResult{Due: true, Occurrence: at, Transaction: &tx}, nil
		},
	})

	body := `{
		"template": {"id": "gym", "amount": "40", "type": "expense", "category": "Health",
			"frequency": "weekly", "start_date": "2025-01-06T00:00:00Z"},
		"last_run": "2025-01-06T00:00:00Z",
		"now": "2025-01-13T08:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recurring/due", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	handler.Due(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RecurringDueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Due || resp.Transaction == nil || resp.Transaction.ID != "tx-1" {
		t.Fatalf("unexpected due response %+v", resp)
	}
	if resp.Transaction.Category != "Health" {
		t.Fatalf("expected category Health, got %s", resp.Transaction.Category)
	}
}
