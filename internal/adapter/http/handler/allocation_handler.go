package handler

import (
	"context"
	"net/http"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// AllocationService defines the behavior needed by AllocationHandler.
type AllocationService interface {
	Allocate(ctx context.Context, input usecase.AllocateInput) usecase.AllocateResult
	Accumulate(ctx context.Context, input usecase.AccumulateInput) (domain.RunningTotals, error)
	Breakdown(ctx context.Context, input usecase.BreakdownInput) (*usecase.BreakdownReport, error)
}

// AllocationHandler handles interest-first payment allocation requests.
type AllocationHandler struct {
	allocationUC AllocationService
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationUC AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationUC: allocationUC}
}

// Allocate splits a single payment between interest and principal.
func (h *AllocationHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result := h.allocationUC.Allocate(r.Context(), req.ToUseCaseInput())
	writeJSON(w, http.StatusOK, dto.AllocationFromUseCase(result))
}

// Accumulate applies ordered payment amounts to the targets.
func (h *AllocationHandler) Accumulate(w http.ResponseWriter, r *http.Request) {
	var req dto.AccumulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	totals, err := h.allocationUC.Accumulate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to accumulate payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RunningTotalsFromDomain(totals))
}

// Breakdown returns the per-payment allocation of an obligation.
func (h *AllocationHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	var req dto.BreakdownRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := h.allocationUC.Breakdown(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to compute breakdown", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BreakdownFromReport(report))
}
