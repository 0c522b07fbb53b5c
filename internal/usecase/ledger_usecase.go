package usecase

import (
	"context"
	"fmt"
)

// LedgerUseCase runs whole-ledger audits.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgerRepo: ledgerRepo}
}

// CheckConsistency verifies that every account's balance equals the
// balance_after of its newest ledger entry. It returns the ids of
// accounts that fail the check; an empty slice means the ledger is
// consistent.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) ([]string, error) {
	mismatched, err := uc.ledgerRepo.FindInconsistentAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit ledger: %w", err)
	}
	return mismatched, nil
}
