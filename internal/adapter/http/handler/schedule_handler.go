package handler

import (
	"context"
	"net/http"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// ScheduleService defines the behavior needed by ScheduleHandler.
type ScheduleService interface {
	EvaluateSchedule(ctx context.Context, input usecase.EvaluateScheduleInput) (*domain.ScheduleReport, error)
	GenerateSchedule(ctx context.Context, input usecase.GenerateScheduleInput) (domain.Schedule, error)
	EditSchedule(ctx context.Context, input usecase.EditScheduleInput) (domain.Schedule, error)
}

// ScheduleHandler handles payment schedule requests.
type ScheduleHandler struct {
	scheduleUC ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleUC ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleUC: scheduleUC}
}

// Evaluate reports paid, remaining and overpayment per schedule period.
func (h *ScheduleHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.scheduleUC.EvaluateSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to evaluate schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleReportFromDomain(report))
}

// Generate builds an amortization schedule from loan terms.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.scheduleUC.GenerateSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to generate schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}

// Edit appends, removes or updates periods and returns the new schedule with
// its totals.
func (h *ScheduleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req dto.EditScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := h.scheduleUC.EditSchedule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to edit schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}
