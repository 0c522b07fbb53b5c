package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

const transactionColumns = `id, account_id, type, status, amount, currency, balance_after, description, related_account_id, reference_number, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a ledger entry inside the given unit of work.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	q := tx.(*Tx).PgxTx()

	var related any
	if txn.RelatedAccountID() != "" {
		related = txn.RelatedAccountID()
	}

	_, err := q.Exec(ctx, `
		INSERT INTO transactions (id, account_id, type, status, amount, currency, balance_after, description, related_account_id, reference_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		txn.ID(),
		txn.AccountID(),
		string(txn.Type()),
		string(txn.Status()),
		decimalToNumeric(txn.Amount().Amount()),
		txn.Amount().Currency(),
		decimalToNumeric(txn.BalanceAfter().Amount()),
		txn.Description(),
		related,
		txn.ReferenceNumber(),
		timeToPgTimestamptz(txn.CreatedAt()),
	)
	if isUniqueViolation(err, "transactions_reference_number_key") {
		return domain.ErrDuplicateReference
	}
	return err
}

// GetByReference retrieves a ledger entry by its reference number.
func (r *TransactionRepository) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE reference_number = $1`, referenceNumber)
	return scanTransaction(row)
}

// ListByAccount pages through an account's entries, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		id, accountID, txType, status, currency, description, referenceNumber string
		related                                                               sql.NullString
		amount, balanceAfter                                                  pgtype.Numeric
		createdAt                                                             pgtype.Timestamptz
	)
	err := row.Scan(&id, &accountID, &txType, &status, &amount, &currency, &balanceAfter, &description, &related, &referenceNumber, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	amountMoney, err := domain.NewMoney(numericToDecimal(amount), currency)
	if err != nil {
		return nil, fmt.Errorf("stored amount: %w", err)
	}
	balanceMoney, err := domain.NewMoney(numericToDecimal(balanceAfter), currency)
	if err != nil {
		return nil, fmt.Errorf("stored balance: %w", err)
	}

	return domain.ReconstituteTransaction(
		id,
		accountID,
		domain.TransactionType(txType),
		domain.TransactionStatus(status),
		amountMoney,
		balanceMoney,
		description,
		related.String,
		referenceNumber,
		createdAt.Time,
	), nil
}
