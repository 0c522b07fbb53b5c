package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking    AccountType = "checking"
	AccountTypeSavings     AccountType = "savings"
	AccountTypeMoneyMarket AccountType = "money_market"
)

// ValidateAccountType checks t against the known account types.
func ValidateAccountType(t AccountType) error {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeMoneyMarket:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, t)
	}
}

// AccountStatus is the lifecycle state of an account.
// Active and Frozen toggle freely; Closed is terminal.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account is the ledger aggregate. The balance and status are only mutable
// through its methods, and every balance mutation appends exactly one
// immutable Transaction whose BalanceAfter equals the resulting balance.
// The balance therefore stays a derived projection of the transaction log.
type Account struct {
	id            string
	accountNumber string
	accountType   AccountType
	status        AccountStatus
	balance       Money
	ownerID       string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time

	// transactions appended by operations on this instance, in order.
	// Historical entries live in the store and are queried separately.
	transactions []*Transaction
}

// NewAccount opens an account with a zero balance, active status and a
// freshly generated 12-digit account number. The number is unique with
// overwhelming probability; the store still enforces uniqueness, and the
// caller retries with a new aggregate on a duplicate.
func NewAccount(id, ownerID string, accountType AccountType, currency string) (*Account, Event, error) {
	if err := ValidateAccountType(accountType); err != nil {
		return nil, nil, err
	}

	balance, err := Zero(currency)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	a := &Account{
		id:            id,
		accountNumber: generateAccountNumber(),
		accountType:   accountType,
		status:        AccountStatusActive,
		balance:       balance,
		ownerID:       ownerID,
		version:       0,
		createdAt:     now,
		updatedAt:     now,
	}

	ev := AccountOpened{
		AccountID:     a.id,
		OwnerID:       a.ownerID,
		AccountNumber: a.accountNumber,
		Type:          a.accountType,
		Currency:      balance.Currency(),
	}

	return a, ev, nil
}

// ReconstituteAccount rebuilds an account from stored state. It is intended
// for repositories only and performs no validation.
func ReconstituteAccount(
	id, accountNumber string,
	accountType AccountType,
	status AccountStatus,
	balance Money,
	ownerID string,
	version int64,
	createdAt, updatedAt time.Time,
) *Account {
	return &Account{
		id:            id,
		accountNumber: accountNumber,
		accountType:   accountType,
		status:        status,
		balance:       balance,
		ownerID:       ownerID,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the account identifier.
func (a *Account) ID() string { return a.id }

// AccountNumber returns the 12-digit account number.
func (a *Account) AccountNumber() string { return a.accountNumber }

// Type returns the account type.
func (a *Account) Type() AccountType { return a.accountType }

// Status returns the lifecycle status.
func (a *Account) Status() AccountStatus { return a.status }

// Balance returns the current balance.
func (a *Account) Balance() Money { return a.balance }

// OwnerID returns the owning user's identifier.
func (a *Account) OwnerID() string { return a.ownerID }

// Version returns the version the account was loaded with. The store checks
// it on save and bumps it; the aggregate never changes it in memory.
func (a *Account) Version() int64 { return a.version }

// CreatedAt returns the creation timestamp (UTC).
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last modification timestamp (UTC).
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }

// Transactions returns the transactions appended by operations on this
// instance since it was constructed or loaded.
func (a *Account) Transactions() []*Transaction {
	out := make([]*Transaction, len(a.transactions))
	copy(out, a.transactions)

	return out
}

// Deposit adds funds to the account and records a deposit transaction.
func (a *Account) Deposit(amount Money, description string) (*Transaction, Event, error) {
	if err := a.ensureActive(); err != nil {
		return nil, nil, err
	}

	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	newBalance, err := a.balance.Add(amount)
	if err != nil {
		return nil, nil, err
	}

	if description == "" {
		description = "Deposit"
	}

	a.balance = newBalance
	a.updatedAt = time.Now().UTC()

	txn := newTransaction(a.id, TransactionTypeDeposit, amount, newBalance, description, "")
	a.transactions = append(a.transactions, txn)

	ev := FundsDeposited{
		AccountID: a.id,
		Amount:    amount,
		Balance:   newBalance,
		Reference: txn.ReferenceNumber(),
	}

	return txn, ev, nil
}

// Withdraw removes funds from the account and records a withdrawal
// transaction. Withdrawing the exact balance is allowed and leaves zero.
func (a *Account) Withdraw(amount Money, description string) (*Transaction, Event, error) {
	if err := a.ensureActive(); err != nil {
		return nil, nil, err
	}

	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	over, err := amount.GreaterThan(a.balance)
	if err != nil {
		return nil, nil, err
	}

	if over {
		return nil, nil, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, amount, a.balance)
	}

	newBalance, err := a.balance.Sub(amount)
	if err != nil {
		return nil, nil, err
	}

	if description == "" {
		description = "Withdrawal"
	}

	a.balance = newBalance
	a.updatedAt = time.Now().UTC()

	txn := newTransaction(a.id, TransactionTypeWithdrawal, amount, newBalance, description, "")
	a.transactions = append(a.transactions, txn)

	ev := FundsWithdrawn{
		AccountID: a.id,
		Amount:    amount,
		Balance:   newBalance,
		Reference: txn.ReferenceNumber(),
	}

	return txn, ev, nil
}

// TransferResult carries the two legs of a transfer and its event.
type TransferResult struct {
	Outgoing *Transaction
	Incoming *Transaction
	Event    Event
}

// TransferTo moves funds from this account to dest as one logical unit:
// the debit, the credit and both transaction records either all take effect
// or none do. All checks run before the first mutation.
func (a *Account) TransferTo(dest *Account, amount Money, description string) (*TransferResult, error) {
	if a.status != AccountStatusActive {
		return nil, fmt.Errorf("source account %s: %w (status %s)", a.id, ErrAccountNotActive, a.status)
	}

	if dest.status != AccountStatusActive {
		return nil, fmt.Errorf("destination account %s: %w (status %s)", dest.id, ErrAccountNotActive, dest.status)
	}

	if dest.id == a.id {
		return nil, ErrSameAccountTransfer
	}

	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	over, err := amount.GreaterThan(a.balance)
	if err != nil {
		return nil, err
	}

	if over {
		return nil, fmt.Errorf("%w: requested %s, available %s", ErrInsufficientFunds, amount, a.balance)
	}

	sourceBalance, err := a.balance.Sub(amount)
	if err != nil {
		return nil, err
	}

	destBalance, err := dest.balance.Add(amount)
	if err != nil {
		return nil, err
	}

	outDescription := description
	if outDescription == "" {
		outDescription = fmt.Sprintf("Transfer to %s", dest.accountNumber)
	}
	inDescription := fmt.Sprintf("Transfer from %s", a.accountNumber)

	now := time.Now().UTC()

	a.balance = sourceBalance
	a.updatedAt = now
	outgoing := newTransaction(a.id, TransactionTypeTransferOut, amount, sourceBalance, outDescription, dest.id)
	a.transactions = append(a.transactions, outgoing)

	dest.balance = destBalance
	dest.updatedAt = now
	incoming := newTransaction(dest.id, TransactionTypeTransferIn, amount, destBalance, inDescription, a.id)
	dest.transactions = append(dest.transactions, incoming)

	ev := FundsTransferred{
		SourceAccountID:      a.id,
		DestinationAccountID: dest.id,
		Amount:               amount,
		OutgoingReference:    outgoing.ReferenceNumber(),
		IncomingReference:    incoming.ReferenceNumber(),
	}

	return &TransferResult{Outgoing: outgoing, Incoming: incoming, Event: ev}, nil
}

// Freeze suspends the account. A closed account cannot be frozen.
func (a *Account) Freeze() error {
	if a.status == AccountStatusClosed {
		return fmt.Errorf("%w: cannot freeze a closed account", ErrInvalidStateTransition)
	}

	a.status = AccountStatusFrozen
	a.updatedAt = time.Now().UTC()

	return nil
}

// Unfreeze reactivates a frozen account. A closed account cannot be
// unfrozen.
func (a *Account) Unfreeze() error {
	if a.status == AccountStatusClosed {
		return fmt.Errorf("%w: cannot unfreeze a closed account", ErrInvalidStateTransition)
	}

	a.status = AccountStatusActive
	a.updatedAt = time.Now().UTC()

	return nil
}

// Close closes the account permanently. The balance must be zero.
func (a *Account) Close() error {
	if a.status == AccountStatusClosed {
		return fmt.Errorf("%w: account is already closed", ErrInvalidStateTransition)
	}

	if !a.balance.IsZero() {
		return ErrNonZeroBalance
	}

	a.status = AccountStatusClosed
	a.updatedAt = time.Now().UTC()

	return nil
}

func (a *Account) ensureActive() error {
	if a.status != AccountStatusActive {
		return fmt.Errorf("%w: account %s is %s", ErrAccountNotActive, a.id, a.status)
	}

	return nil
}

// generateAccountNumber produces a random 12-digit account number. Bytes
// above the largest multiple of 10 are rejected so every digit is equally
// likely.
func generateAccountNumber() string {
	digits := make([]byte, 12)
	buf := make([]byte, 1)

	for i := 0; i < len(digits); {
		_, _ = rand.Read(buf)
		if buf[0] >= 250 {
			continue
		}
		digits[i] = '0' + buf[0]%10
		i++
	}

	return string(digits)
}
