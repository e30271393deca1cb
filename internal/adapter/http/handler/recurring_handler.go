package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/usecase"
)

// RecurringService defines the behavior needed by RecurringHandler.
type RecurringService interface {
	Next(ctx context.Context, input usecase.NextOccurrencesInput) ([]time.Time, error)
	Due(ctx context.Context, input usecase.DueInput) (*usecase.DueResult, error)
}

// RecurringHandler handles recurring template requests.
type RecurringHandler struct {
	recurringUC RecurringService
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringUC RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringUC: recurringUC}
}

// Next lists upcoming occurrences of a template.
func (h *RecurringHandler) Next(w http.ResponseWriter, r *http.Request) {
	var req dto.NextOccurrencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template", err.Error())
		return
	}

	occurrences, err := h.recurringUC.Next(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to list occurrences", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OccurrencesResponse{
		TemplateID:  input.Template.ID,
		Occurrences: occurrences,
	})
}

// Due reports whether a template produced an occurrence since its last run.
func (h *RecurringHandler) Due(w http.ResponseWriter, r *http.Request) {
	var req dto.RecurringDueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template", err.Error())
		return
	}

	result, err := h.recurringUC.Due(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to check template", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecurringDueFromUseCase(input.Template.ID, result))
}
