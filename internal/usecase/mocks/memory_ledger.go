package mocks

import (
	"context"
	"sync"

	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

// MemoryLedger is an in-memory backing store that mimics the relational
// store closely enough for concurrency tests: ForUpdate reads take a
// per-account lock held until the unit of work ends, writes are staged
// and only become visible on Commit, and UpdateState enforces the same
// version check as the real repository. It implements TransactionManager,
// AccountRepository, TransactionRepository and OutboxRepository at once.
type MemoryLedger struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	transactions []*domain.Transaction
	events       []*domain.OutboxEvent
	rowLocks     map[string]*sync.Mutex

	// FailTransactionCreate injects a failure into ledger-entry writes,
	// for verifying that a failed unit of work leaves nothing durable.
	FailTransactionCreate func(txn *domain.Transaction) error
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts: make(map[string]*domain.Account),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

// Seed inserts an account directly, bypassing any unit of work.
func (l *MemoryLedger) Seed(account *domain.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account.ID()] = cloneAccount(account)
	l.rowLocks[account.ID()] = &sync.Mutex{}
}

// Account returns the committed state of an account.
func (l *MemoryLedger) Account(id string) *domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.accounts[id]; ok {
		return cloneAccount(acc)
	}
	return nil
}

// Transactions returns all committed ledger entries for an account.
func (l *MemoryLedger) Transactions(accountID string) []*domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*domain.Transaction
	for _, txn := range l.transactions {
		if txn.AccountID() == accountID {
			out = append(out, txn)
		}
	}
	return out
}

// Events returns all committed outbox events.
func (l *MemoryLedger) Events() []*domain.OutboxEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*domain.OutboxEvent, len(l.events))
	copy(out, l.events)
	return out
}

func (l *MemoryLedger) rowLock(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lock, ok := l.rowLocks[id]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	l.rowLocks[id] = lock
	return lock
}

// Begin implements TransactionManager.
func (l *MemoryLedger) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &memoryTx{ledger: l}, nil
}

type stagedAccount struct {
	account *domain.Account
	insert  bool
}

type memoryTx struct {
	ledger       *MemoryLedger
	held         []string
	accounts     []stagedAccount
	transactions []*domain.Transaction
	events       []*domain.OutboxEvent
	done         bool
}

func (tx *memoryTx) lockRow(id string) {
	for _, held := range tx.held {
		if held == id {
			return
		}
	}
	tx.ledger.rowLock(id).Lock()
	tx.held = append(tx.held, id)
}

func (tx *memoryTx) releaseRows() {
	for _, id := range tx.held {
		tx.ledger.rowLock(id).Unlock()
	}
	tx.held = nil
}

func (tx *memoryTx) Commit(ctx context.Context) error {
	if tx.done {
		return nil
	}
	tx.done = true

	tx.ledger.mu.Lock()
	for _, staged := range tx.accounts {
		tx.ledger.accounts[staged.account.ID()] = staged.account
	}
	tx.ledger.transactions = append(tx.ledger.transactions, tx.transactions...)
	tx.ledger.events = append(tx.ledger.events, tx.events...)
	tx.ledger.mu.Unlock()

	tx.releaseRows()
	return nil
}

func (tx *memoryTx) Rollback(ctx context.Context) error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.accounts = nil
	tx.transactions = nil
	tx.events = nil
	tx.releaseRows()
	return nil
}

// CreateTx implements AccountRepository.
func (l *MemoryLedger) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	mtx := tx.(*memoryTx)
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.accounts {
		if existing.AccountNumber() == account.AccountNumber() {
			return domain.ErrDuplicateAccountNumber
		}
	}
	mtx.accounts = append(mtx.accounts, stagedAccount{account: cloneAccount(account), insert: true})
	return nil
}

func (l *MemoryLedger) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if acc := l.Account(id); acc != nil {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (l *MemoryLedger) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, acc := range l.accounts {
		if acc.AccountNumber() == number {
			return cloneAccount(acc), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (l *MemoryLedger) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	mtx := tx.(*memoryTx)
	mtx.lockRow(id)
	return l.GetByID(ctx, id)
}

func (l *MemoryLedger) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	mtx := tx.(*memoryTx)
	var accounts []*domain.Account
	for _, id := range ids {
		mtx.lockRow(id)
		acc, err := l.GetByID(ctx, id)
		if err != nil {
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (l *MemoryLedger) UpdateState(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	mtx := tx.(*memoryTx)
	l.mu.Lock()
	stored, ok := l.accounts[account.ID()]
	if !ok {
		l.mu.Unlock()
		return domain.ErrAccountNotFound
	}
	if stored.Version() != account.Version() {
		l.mu.Unlock()
		return domain.ErrConcurrentModification
	}
	l.mu.Unlock()

	next := domain.ReconstituteAccount(
		account.ID(),
		account.AccountNumber(),
		account.Type(),
		account.Status(),
		account.Balance(),
		account.OwnerID(),
		account.Version()+1,
		account.CreatedAt(),
		account.UpdatedAt(),
	)
	mtx.accounts = append(mtx.accounts, stagedAccount{account: next})
	return nil
}

func (l *MemoryLedger) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var accounts []*domain.Account
	for _, acc := range l.accounts {
		if acc.OwnerID() == ownerID {
			accounts = append(accounts, cloneAccount(acc))
		}
	}
	return accounts, nil
}

// Create implements TransactionRepository.
func (l *MemoryLedger) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if l.FailTransactionCreate != nil {
		if err := l.FailTransactionCreate(txn); err != nil {
			return err
		}
	}
	mtx := tx.(*memoryTx)
	mtx.transactions = append(mtx.transactions, txn)
	return nil
}

func (l *MemoryLedger) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, txn := range l.transactions {
		if txn.ReferenceNumber() == referenceNumber {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (l *MemoryLedger) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	return l.Transactions(accountID), nil
}

// Outbox returns an OutboxRepository view over the ledger. It is a
// separate adapter because Create is already taken by the transaction
// repository side.
func (l *MemoryLedger) Outbox() usecase.OutboxRepository {
	return &memoryOutbox{ledger: l}
}

type memoryOutbox struct {
	ledger *MemoryLedger
}

func (o *memoryOutbox) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	mtx := tx.(*memoryTx)
	mtx.events = append(mtx.events, event)
	return nil
}

func cloneAccount(a *domain.Account) *domain.Account {
	return domain.ReconstituteAccount(
		a.ID(),
		a.AccountNumber(),
		a.Type(),
		a.Status(),
		a.Balance(),
		a.OwnerID(),
		a.Version(),
		a.CreatedAt(),
		a.UpdatedAt(),
	)
}
