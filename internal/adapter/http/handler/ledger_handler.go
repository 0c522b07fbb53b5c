package handler

import (
	"context"
	"net/http"

	"github.com/soyRex-codes/mybank/internal/adapter/http/dto"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) ([]string, error)
}

// LedgerHandler exposes the ledger consistency audit.
type LedgerHandler struct {
	ledgerUC LedgerService
}

func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies that every account balance matches the
// latest balance recorded in its ledger. Returns 409 when any account
// is out of sync.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	mismatched, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	resp := dto.LedgerAuditResponse{
		Consistent:         len(mismatched) == 0,
		MismatchedAccounts: mismatched,
	}

	status := http.StatusOK
	if !resp.Consistent {
		status = http.StatusConflict
	}
	writeJSON(w, status, resp)
}
