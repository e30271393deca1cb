package handler

import (
	"context"
	"net/http"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
	"github.com/iho/fintrack/internal/usecase"
)

// SharedItemService defines the behavior needed by SharedItemHandler.
type SharedItemService interface {
	SummarizeSharedItem(ctx context.Context, input usecase.SharedItemInput) (*domain.SharedItemSummary, error)
}

// SharedItemHandler handles shared expense requests.
type SharedItemHandler struct {
	sharedUC SharedItemService
}

// NewSharedItemHandler creates a new SharedItemHandler.
func NewSharedItemHandler(sharedUC SharedItemService) *SharedItemHandler {
	return &SharedItemHandler{sharedUC: sharedUC}
}

// Summary computes paid, remaining and progress for one shared item.
func (h *SharedItemHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req dto.SharedItemSummaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid shared item", err.Error())
		return
	}

	summary, err := h.sharedUC.SummarizeSharedItem(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to summarize shared item", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SharedItemSummaryFromDomain(summary))
}
