package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
)

// AccountUseCase drives the account lifecycle and single-account money
// movements. Every mutation runs inside a unit of work: the aggregate is
// loaded under an exclusive row lock, mutated in memory, and persisted
// together with its ledger entry and outbox event.
type AccountUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	userRepo        UserRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
}

func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

type OpenAccountInput struct {
	OwnerID     string
	AccountType string
	Currency    string
}

type MoneyOperationInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// OpenAccount creates an active account with a zero balance for an
// existing, active owner. Generated account numbers are random, so a
// unique-constraint collision is retried with a fresh number.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	owner, err := uc.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	if !owner.Active {
		return nil, domain.ErrUserInactive
	}

	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account, event, err := domain.NewAccount(uc.idGen.Generate(), owner.ID, domain.AccountType(input.AccountType), input.Currency)
		if err != nil {
			return nil, err
		}
		err = uc.createAccount(ctx, account, event)
		if errors.Is(err, domain.ErrDuplicateAccountNumber) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return account, nil
	}
	return nil, fmt.Errorf("open account: %w", domain.ErrDuplicateAccountNumber)
}

func (uc *AccountUseCase) createAccount(ctx context.Context, account *domain.Account, event domain.Event) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	if err := uc.outboxRepo.Create(ctx, tx, outboxEventFrom(uc.idGen.Generate(), event)); err != nil {
		return fmt.Errorf("stage event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Deposit credits the account and records the resulting ledger entry.
func (uc *AccountUseCase) Deposit(ctx context.Context, input MoneyOperationInput) (*domain.Transaction, error) {
	return uc.moneyOperation(ctx, input, (*domain.Account).Deposit)
}

// Withdraw debits the account and records the resulting ledger entry.
func (uc *AccountUseCase) Withdraw(ctx context.Context, input MoneyOperationInput) (*domain.Transaction, error) {
	return uc.moneyOperation(ctx, input, (*domain.Account).Withdraw)
}

func (uc *AccountUseCase) moneyOperation(
	ctx context.Context,
	input MoneyOperationInput,
	op func(*domain.Account, domain.Money, string) (*domain.Transaction, domain.Event, error),
) (*domain.Transaction, error) {
	if err := domain.ValidateOperationAmount(input.Amount); err != nil {
		return nil, err
	}
	amount, err := domain.NewMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}

	txn, event, err := op(account, amount, input.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}
	if err := uc.accountRepo.UpdateState(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if err := uc.outboxRepo.Create(ctx, tx, outboxEventFrom(uc.idGen.Generate(), event)); err != nil {
		return nil, fmt.Errorf("stage event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return txn, nil
}

// Freeze suspends all money movements on the account.
func (uc *AccountUseCase) Freeze(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.statusOperation(ctx, accountID, (*domain.Account).Freeze)
}

// Unfreeze returns a frozen account to active.
func (uc *AccountUseCase) Unfreeze(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.statusOperation(ctx, accountID, (*domain.Account).Unfreeze)
}

// Close permanently closes an account that has a zero balance.
func (uc *AccountUseCase) Close(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.statusOperation(ctx, accountID, (*domain.Account).Close)
}

func (uc *AccountUseCase) statusOperation(
	ctx context.Context,
	accountID string,
	op func(*domain.Account) error,
) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	if err := op(account); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.UpdateState(ctx, tx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return account, nil
}

// GetAccount loads an account by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, accountID)
}

// GetAccountByNumber loads an account by its human-facing number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsByOwner pages through an owner's accounts.
func (uc *AccountUseCase) ListAccountsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.ListByOwner(ctx, ownerID, limit, offset)
}
