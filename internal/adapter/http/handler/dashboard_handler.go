package handler

import (
	"context"
	"net/http"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	Summary(ctx context.Context, input usecase.DashboardInput) domain.DashboardSummary
	BudgetProgress(ctx context.Context, input usecase.BudgetInput) []domain.BudgetStatus
	SavingsProgress(ctx context.Context, goals []domain.SavingsGoal) []domain.SavingsStatus
}

// DashboardHandler handles overview, budget and savings requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// Summary computes income, expenses, shared totals and category breakdowns.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req dto.DashboardRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transactions", err.Error())
		return
	}

	summary := h.dashboardUC.Summary(r.Context(), input)
	writeJSON(w, http.StatusOK, dto.DashboardFromDomain(summary))
}

// Budgets computes spending against each monthly budget.
func (h *DashboardHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	var req dto.BudgetProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid budgets", err.Error())
		return
	}

	statuses := h.dashboardUC.BudgetProgress(r.Context(), input)
	writeJSON(w, http.StatusOK, dto.BudgetStatusesFromDomain(statuses))
}

// Savings computes progress toward each savings goal.
func (h *DashboardHandler) Savings(w http.ResponseWriter, r *http.Request) {
	var req dto.SavingsProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	statuses := h.dashboardUC.SavingsProgress(r.Context(), req.ToDomain())
	writeJSON(w, http.StatusOK, dto.SavingsStatusesFromDomain(statuses))
}
