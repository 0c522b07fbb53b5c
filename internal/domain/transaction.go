package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeTransferOut TransactionType = "transfer_out"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
)

// TransactionStatus is the processing state of a transaction. Current
// operations only ever produce completed transactions; the other values are
// reserved.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction is an immutable record of a single balance change on an
// account. It is created exactly once, inside an Account operation, and is
// never updated or deleted afterwards.
type Transaction struct {
	id               string
	accountID        string
	txType           TransactionType
	status           TransactionStatus
	amount           Money
	balanceAfter     Money
	description      string
	relatedAccountID string
	referenceNumber  string
	createdAt        time.Time
}

// newTransaction is called by Account operations only.
func newTransaction(accountID string, txType TransactionType, amount, balanceAfter Money, description, relatedAccountID string) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		id:               ulid.Make().String(),
		accountID:        accountID,
		txType:           txType,
		status:           TransactionStatusCompleted,
		amount:           amount,
		balanceAfter:     balanceAfter,
		description:      description,
		relatedAccountID: relatedAccountID,
		referenceNumber:  generateReferenceNumber(now),
		createdAt:        now,
	}
}

// ReconstituteTransaction rebuilds a transaction from stored state. It is
// intended for repositories only and performs no validation.
func ReconstituteTransaction(
	id, accountID string,
	txType TransactionType,
	status TransactionStatus,
	amount, balanceAfter Money,
	description, relatedAccountID, referenceNumber string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:               id,
		accountID:        accountID,
		txType:           txType,
		status:           status,
		amount:           amount,
		balanceAfter:     balanceAfter,
		description:      description,
		relatedAccountID: relatedAccountID,
		referenceNumber:  referenceNumber,
		createdAt:        createdAt,
	}
}

// ID returns the internal identifier.
func (t *Transaction) ID() string { return t.id }

// AccountID returns the account this transaction belongs to.
func (t *Transaction) AccountID() string { return t.accountID }

// Type returns the transaction type.
func (t *Transaction) Type() TransactionType { return t.txType }

// Status returns the processing status.
func (t *Transaction) Status() TransactionStatus { return t.status }

// Amount returns the operation amount.
func (t *Transaction) Amount() Money { return t.amount }

// BalanceAfter returns the account balance immediately after this
// transaction was applied.
func (t *Transaction) BalanceAfter() Money { return t.balanceAfter }

// Description returns the human-readable description.
func (t *Transaction) Description() string { return t.description }

// RelatedAccountID returns the other account of a transfer leg, or an empty
// string for deposits and withdrawals.
func (t *Transaction) RelatedAccountID() string { return t.relatedAccountID }

// ReferenceNumber returns the human-shareable unique reference.
func (t *Transaction) ReferenceNumber() string { return t.referenceNumber }

// CreatedAt returns the creation timestamp (UTC).
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// generateReferenceNumber builds a reference of the form
// TXN-YYYYMMDD-XXXXXXXX where the suffix is 8 uppercase hex characters.
// Collisions are negligible; the store still enforces uniqueness.
func generateReferenceNumber(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)

	return fmt.Sprintf("TXN-%s-%s",
		now.UTC().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(buf)),
	)
}
