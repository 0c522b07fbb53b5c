package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
)

// TransactionUseCase serves read-only ledger queries. Reference-number
// lookups go through a read-through cache; ledger entries never change
// after commit, so cached copies cannot go stale.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	cache           Cache
}

func NewTransactionUseCase(transactionRepo TransactionRepository, cache Cache) *TransactionUseCase {
	return &TransactionUseCase{transactionRepo: transactionRepo, cache: cache}
}

// ListByAccount pages through an account's ledger, newest first.
func (uc *TransactionUseCase) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.transactionRepo.ListByAccount(ctx, accountID, limit, offset)
}

// GetByReference looks a ledger entry up by its reference number.
func (uc *TransactionUseCase) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	key := cacheKey(referenceNumber)
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil && raw != "" {
			if txn, err := decodeCachedTransaction(raw); err == nil {
				return txn, nil
			}
		}
	}

	txn, err := uc.transactionRepo.GetByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := encodeCachedTransaction(txn); err == nil {
			// Cache failures degrade to a repo read on the next lookup.
			_ = uc.cache.Set(ctx, key, raw, transactionCacheTTL)
		}
	}
	return txn, nil
}

func cacheKey(referenceNumber string) string {
	return "txn:ref:" + referenceNumber
}

type cachedTransaction struct {
	ID               string    `json:"id"`
	AccountID        string    `json:"account_id"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	BalanceAfter     string    `json:"balance_after"`
	Description      string    `json:"description"`
	RelatedAccountID string    `json:"related_account_id,omitempty"`
	ReferenceNumber  string    `json:"reference_number"`
	CreatedAt        time.Time `json:"created_at"`
}

func encodeCachedTransaction(txn *domain.Transaction) (string, error) {
	raw, err := json.Marshal(cachedTransaction{
		ID:               txn.ID(),
		AccountID:        txn.AccountID(),
		Type:             string(txn.Type()),
		Status:           string(txn.Status()),
		Amount:           txn.Amount().Amount().String(),
		Currency:         txn.Amount().Currency(),
		BalanceAfter:     txn.BalanceAfter().Amount().String(),
		Description:      txn.Description(),
		RelatedAccountID: txn.RelatedAccountID(),
		ReferenceNumber:  txn.ReferenceNumber(),
		CreatedAt:        txn.CreatedAt(),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeCachedTransaction(raw string) (*domain.Transaction, error) {
	var cached cachedTransaction
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, err
	}
	amountValue, err := decimal.NewFromString(cached.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse cached amount: %w", err)
	}
	balanceValue, err := decimal.NewFromString(cached.BalanceAfter)
	if err != nil {
		return nil, fmt.Errorf("parse cached balance: %w", err)
	}
	amount, err := domain.NewMoney(amountValue, cached.Currency)
	if err != nil {
		return nil, err
	}
	balanceAfter, err := domain.NewMoney(balanceValue, cached.Currency)
	if err != nil {
		return nil, err
	}
	return domain.ReconstituteTransaction(
		cached.ID,
		cached.AccountID,
		domain.TransactionType(cached.Type),
		domain.TransactionStatus(cached.Status),
		amount,
		balanceAfter,
		cached.Description,
		cached.RelatedAccountID,
		cached.ReferenceNumber,
		cached.CreatedAt,
	), nil
}
