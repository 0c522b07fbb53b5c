package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/usecase"
	"github.com/soyRex-codes/mybank/internal/usecase/mocks"
)

func seedOwner(userRepo *mocks.MockUserRepository, id string) {
	userRepo.Create(context.Background(), &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		FirstName: "Maya",
		LastName:  "Chen",
		Active:    true,
	})
}

func newLedgerFixture(t *testing.T) (*usecase.AccountUseCase, *mocks.MemoryLedger, *domain.Account) {
	t.Helper()

	ledger := mocks.NewMemoryLedger()
	userRepo := mocks.NewMockUserRepository()
	seedOwner(userRepo, "user-1")

	account, _, err := domain.NewAccount("acc-1", "user-1", domain.AccountTypeChecking, "USD")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	ledger.Seed(account)

	uc := usecase.NewAccountUseCase(ledger, ledger, ledger, userRepo, ledger.Outbox(), mocks.NewMockIDGenerator())
	return uc, ledger, account
}

func TestAccountUseCase_OpenAccount(t *testing.T) {
	tests := []struct {
		name      string
		input     usecase.OpenAccountInput
		errorType error
	}{
		{
			name:  "successful open",
			input: usecase.OpenAccountInput{OwnerID: "user-1", AccountType: "checking", Currency: "usd"},
		},
		{
			name:      "unknown owner",
			input:     usecase.OpenAccountInput{OwnerID: "nobody", AccountType: "checking", Currency: "USD"},
			errorType: domain.ErrUserNotFound,
		},
		{
			name:      "invalid account type",
			input:     usecase.OpenAccountInput{OwnerID: "user-1", AccountType: "offshore", Currency: "USD"},
			errorType: domain.ErrInvalidAccountType,
		},
		{
			name:      "invalid currency",
			input:     usecase.OpenAccountInput{OwnerID: "user-1", AccountType: "savings", Currency: "US"},
			errorType: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mocks.NewMemoryLedger()
			userRepo := mocks.NewMockUserRepository()
			seedOwner(userRepo, "user-1")

			uc := usecase.NewAccountUseCase(ledger, ledger, ledger, userRepo, ledger.Outbox(), mocks.NewMockIDGenerator())
			account, err := uc.OpenAccount(context.Background(), tt.input)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Errorf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Status() != domain.AccountStatusActive {
				t.Errorf("expected active account, got %s", account.Status())
			}
			if !account.Balance().IsZero() {
				t.Errorf("expected zero opening balance, got %s", account.Balance())
			}
			if stored := ledger.Account(account.ID()); stored == nil {
				t.Error("account was not committed")
			}
			events := ledger.Events()
			if len(events) != 1 || events[0].EventType != domain.EventTypeAccountOpened {
				t.Errorf("expected one account.opened event, got %+v", events)
			}
		})
	}
}

func TestAccountUseCase_OpenAccount_InactiveOwner(t *testing.T) {
	ledger := mocks.NewMemoryLedger()
	userRepo := mocks.NewMockUserRepository()
	userRepo.Create(context.Background(), &domain.User{ID: "user-2", Email: "u2@example.com", Active: false})

	uc := usecase.NewAccountUseCase(ledger, ledger, ledger, userRepo, ledger.Outbox(), mocks.NewMockIDGenerator())
	_, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID: "user-2", AccountType: "checking", Currency: "USD",
	})
	if !errors.Is(err, domain.ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestAccountUseCase_OpenAccount_RetriesNumberCollision(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	userRepo := mocks.NewMockUserRepository()
	seedOwner(userRepo, "user-1")

	var attempts int
	accRepo.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
		attempts++
		if attempts == 1 {
			return domain.ErrDuplicateAccountNumber
		}
		return nil
	}

	uc := usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		accRepo,
		mocks.NewMockTransactionRepository(),
		userRepo,
		mocks.NewMockOutboxRepository(),
		mocks.NewMockIDGenerator(),
	)
	account, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID: "user-1", AccountType: "savings", Currency: "USD",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 create attempts, got %d", attempts)
	}
	if account == nil {
		t.Fatal("expected account after retry")
	}
}

func TestAccountUseCase_Deposit(t *testing.T) {
	uc, ledger, account := newLedgerFixture(t)

	txn, err := uc.Deposit(context.Background(), usecase.MoneyOperationInput{
		AccountID: account.ID(),
		Amount:    decimal.NewFromFloat(250.50),
		Currency:  "USD",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.Type() != domain.TransactionTypeDeposit {
		t.Errorf("expected deposit entry, got %s", txn.Type())
	}

	stored := ledger.Account(account.ID())
	if got := stored.Balance().Amount().String(); got != "250.5" {
		t.Errorf("expected committed balance 250.5, got %s", got)
	}
	if stored.Version() != account.Version()+1 {
		t.Errorf("expected version bump to %d, got %d", account.Version()+1, stored.Version())
	}
	if entries := ledger.Transactions(account.ID()); len(entries) != 1 {
		t.Errorf("expected 1 committed ledger entry, got %d", len(entries))
	}
	if events := ledger.Events(); len(events) != 1 || events[0].EventType != domain.EventTypeFundsDeposited {
		t.Errorf("expected one funds.deposited event, got %+v", events)
	}
}

func TestAccountUseCase_Deposit_InvalidAmount(t *testing.T) {
	uc, ledger, account := newLedgerFixture(t)

	tests := []struct {
		name      string
		amount    decimal.Decimal
		errorType error
	}{
		{"zero", decimal.Zero, domain.ErrInvalidAmount},
		{"negative", decimal.NewFromInt(-5), domain.ErrInvalidAmount},
		{"too large", decimal.New(2, 12), domain.ErrAmountTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Deposit(context.Background(), usecase.MoneyOperationInput{
				AccountID: account.ID(), Amount: tt.amount, Currency: "USD",
			})
			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
	if entries := ledger.Transactions(account.ID()); len(entries) != 0 {
		t.Errorf("rejected deposits must not write entries, got %d", len(entries))
	}
}

func TestAccountUseCase_Withdraw_InsufficientFunds(t *testing.T) {
	uc, ledger, account := newLedgerFixture(t)

	if _, err := uc.Deposit(context.Background(), usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(100), Currency: "USD",
	}); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	_, err := uc.Withdraw(context.Background(), usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(101), Currency: "USD",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	stored := ledger.Account(account.ID())
	if got := stored.Balance().Amount().String(); got != "100" {
		t.Errorf("failed withdrawal must not change committed balance, got %s", got)
	}
	if entries := ledger.Transactions(account.ID()); len(entries) != 1 {
		t.Errorf("expected only the seed entry, got %d", len(entries))
	}
}

func TestAccountUseCase_ConcurrentWithdrawals(t *testing.T) {
	uc, ledger, account := newLedgerFixture(t)

	const (
		workers  = 10
		each     = 100
		starting = workers * each
	)
	if _, err := uc.Deposit(context.Background(), usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(starting), Currency: "USD",
	}); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Withdraw(context.Background(), usecase.MoneyOperationInput{
				AccountID: account.ID(), Amount: decimal.NewFromInt(each), Currency: "USD",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("withdrawal failed: %v", err)
		}
	}

	stored := ledger.Account(account.ID())
	if !stored.Balance().IsZero() {
		t.Errorf("expected final balance 0, got %s", stored.Balance())
	}
	if entries := ledger.Transactions(account.ID()); len(entries) != workers+1 {
		t.Errorf("expected %d committed entries, got %d", workers+1, len(entries))
	}
}

func TestAccountUseCase_Lifecycle(t *testing.T) {
	uc, _, account := newLedgerFixture(t)
	ctx := context.Background()

	if _, err := uc.Deposit(ctx, usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(50), Currency: "USD",
	}); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	frozen, err := uc.Freeze(ctx, account.ID())
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if frozen.Status() != domain.AccountStatusFrozen {
		t.Errorf("expected frozen, got %s", frozen.Status())
	}

	if _, err := uc.Withdraw(ctx, usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(10), Currency: "USD",
	}); !errors.Is(err, domain.ErrAccountNotActive) {
		t.Errorf("expected ErrAccountNotActive on frozen account, got %v", err)
	}

	if _, err := uc.Unfreeze(ctx, account.ID()); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}

	if _, err := uc.Close(ctx, account.ID()); !errors.Is(err, domain.ErrNonZeroBalance) {
		t.Errorf("expected ErrNonZeroBalance, got %v", err)
	}

	if _, err := uc.Withdraw(ctx, usecase.MoneyOperationInput{
		AccountID: account.ID(), Amount: decimal.NewFromInt(50), Currency: "USD",
	}); err != nil {
		t.Fatalf("drain withdrawal: %v", err)
	}

	closed, err := uc.Close(ctx, account.ID())
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status() != domain.AccountStatusClosed {
		t.Errorf("expected closed, got %s", closed.Status())
	}

	if _, err := uc.Unfreeze(ctx, account.ID()); !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Errorf("expected ErrInvalidStateTransition after close, got %v", err)
	}
}

func TestAccountUseCase_ListAccountsByOwner(t *testing.T) {
	accRepo := mocks.NewMockAccountRepository()
	var gotLimit, gotOffset int
	accRepo.ListByOwnerFunc = func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}
	userRepo := mocks.NewMockUserRepository()
	seedOwner(userRepo, "user-1")

	uc := usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		accRepo,
		mocks.NewMockTransactionRepository(),
		userRepo,
		mocks.NewMockOutboxRepository(),
		mocks.NewMockIDGenerator(),
	)

	if _, err := uc.ListAccountsByOwner(context.Background(), "user-1", 0, -3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 || gotOffset != 0 {
		t.Errorf("expected defaults 20/0, got %d/%d", gotLimit, gotOffset)
	}

	if _, err := uc.ListAccountsByOwner(context.Background(), "user-1", 5000, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 || gotOffset != 10 {
		t.Errorf("expected clamp 100/10, got %d/%d", gotLimit, gotOffset)
	}
}

func TestAccountUseCase_GetAccountByNumber(t *testing.T) {
	uc, _, account := newLedgerFixture(t)

	found, err := uc.GetAccountByNumber(context.Background(), account.AccountNumber())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID() != account.ID() {
		t.Errorf("expected account %s, got %s", account.ID(), found.ID())
	}

	if _, err := uc.GetAccountByNumber(context.Background(), "000000000000"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
