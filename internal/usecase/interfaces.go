package usecase

import (
	"context"
	"time"

	"github.com/soyRex-codes/mybank/internal/domain"
)

// Transaction is an open unit of work. Commit makes every write staged
// through it durable at once; Rollback discards them. Rollback after a
// successful Commit is a no-op, which lets callers defer it.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager begins units of work against the backing store.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// AccountRepository persists account aggregates.
//
// The ForUpdate variants acquire exclusive row locks for the duration of
// the surrounding unit of work. GetByIDsForUpdate must lock rows in the
// order the ids are given; callers sort ids before locking so that
// concurrent transfers over the same pair cannot deadlock.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// UpdateState persists balance, status and version. It fails with
	// domain.ErrConcurrentModification when the stored version no longer
	// matches the version the aggregate was loaded with.
	UpdateState(ctx context.Context, tx Transaction, account *domain.Account) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository persists ledger entries. Entries are immutable
// once written.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// UserRepository persists account owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OutboxRepository stages domain events inside the unit of work that
// produced them, so state changes and their events commit atomically.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
}

// LedgerRepository runs cross-aggregate consistency queries.
type LedgerRepository interface {
	// FindInconsistentAccounts returns ids of accounts whose stored
	// balance does not equal the balance_after of their newest entry.
	FindInconsistentAccounts(ctx context.Context) ([]string, error)
}

// IDGenerator produces unique identifiers for new entities.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs fn when it fails with a transient error such as a
// deadlock or a lost version check. Non-retryable errors are returned
// as-is after the first attempt.
type Retrier interface {
	Retry(ctx context.Context, fn func() error) error
}

// Cache is a read-through cache for immutable lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// IdempotencyStore remembers responses keyed by client-supplied
// idempotency keys so retried requests replay instead of re-executing.
type IdempotencyStore interface {
	// CheckAndSet reserves key for ttl. It returns the stored value and
	// false when the key already exists.
	CheckAndSet(ctx context.Context, key, value string, ttl time.Duration) (string, bool, error)
	// Update replaces the value stored under a reserved key.
	Update(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete releases a reserved key so the request can be retried.
	Delete(ctx context.Context, key string) error
}
