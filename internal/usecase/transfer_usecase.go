package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
)

// TransferUseCase moves money between two accounts atomically. Both rows
// are locked in sorted-id order inside one unit of work, so concurrent
// transfers over the same pair cannot deadlock, and either both ledger
// entries and both balance updates commit or none do. Transient failures
// such as deadlocks or lost version checks are retried with backoff.
type TransferUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	retrier         Retrier
}

func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		retrier:         retrier,
	}
}

type TransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Currency             string
	Description          string
}

// TransferOutput carries both legs of a completed transfer.
type TransferOutput struct {
	Outgoing *domain.Transaction
	Incoming *domain.Transaction
}

// Execute runs a transfer end to end.
func (uc *TransferUseCase) Execute(ctx context.Context, input TransferInput) (*TransferOutput, error) {
	if input.SourceAccountID == input.DestinationAccountID {
		return nil, domain.ErrSameAccountTransfer
	}
	if err := domain.ValidateOperationAmount(input.Amount); err != nil {
		return nil, err
	}
	amount, err := domain.NewMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	var out *TransferOutput
	err = uc.retrier.Retry(ctx, func() error {
		result, err := uc.executeOnce(ctx, input, amount)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *TransferUseCase) executeOnce(ctx context.Context, input TransferInput, amount domain.Money) (*TransferOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, transferTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock order is fixed by sorting, independent of transfer direction.
	ids := []string{input.SourceAccountID, input.DestinationAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}

	var source, dest *domain.Account
	for _, account := range accounts {
		switch account.ID() {
		case input.SourceAccountID:
			source = account
		case input.DestinationAccountID:
			dest = account
		}
	}
	if source == nil {
		return nil, domain.ErrSourceNotFound
	}
	if dest == nil {
		return nil, domain.ErrDestinationNotFound
	}

	result, err := source.TransferTo(dest, amount, input.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, tx, result.Outgoing); err != nil {
		return nil, fmt.Errorf("create outgoing entry: %w", err)
	}
	if err := uc.transactionRepo.Create(ctx, tx, result.Incoming); err != nil {
		return nil, fmt.Errorf("create incoming entry: %w", err)
	}
	if err := uc.accountRepo.UpdateState(ctx, tx, source); err != nil {
		return nil, fmt.Errorf("update source account: %w", err)
	}
	if err := uc.accountRepo.UpdateState(ctx, tx, dest); err != nil {
		return nil, fmt.Errorf("update destination account: %w", err)
	}
	if err := uc.outboxRepo.Create(ctx, tx, outboxEventFrom(uc.idGen.Generate(), result.Event)); err != nil {
		return nil, fmt.Errorf("stage event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &TransferOutput{Outgoing: result.Outgoing, Incoming: result.Incoming}, nil
}
