package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/soyRex-codes/mybank/internal/adapter/http/dto"
	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Execute(ctx context.Context, input usecase.TransferInput) (*usecase.TransferOutput, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.Metrics
}

func NewTransferHandler(transferUC TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create moves funds between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := req.ToUseCaseInput()
	start := time.Now()

	output, err := h.transferUC.Execute(r.Context(), input)
	if err != nil {
		if h.metrics != nil {
			h.metrics.TransferErrors.WithLabelValues(transferErrorReason(err)).Inc()
		}
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersCompleted.Inc()
		h.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := input.Amount.Float64()
		h.metrics.TransferAmount.Observe(amount)
	}

	writeJSON(w, http.StatusCreated, dto.TransferResponse{
		Outgoing: dto.TransactionFromDomain(output.Outgoing),
		Incoming: dto.TransactionFromDomain(output.Incoming),
	})
}

func transferErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, domain.ErrSourceNotFound), errors.Is(err, domain.ErrDestinationNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrSameAccountTransfer):
		return "same_account"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, domain.ErrConcurrentModification):
		return "concurrent_modification"
	default:
		return "internal"
	}
}
