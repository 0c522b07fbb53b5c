package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const accountColumns = `id, account_number, account_type, status, balance, currency, owner_id, version, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// CreateTx inserts a new account inside the given unit of work.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO accounts (id, account_number, account_type, status, balance, currency, owner_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID(),
		account.AccountNumber(),
		string(account.Type()),
		string(account.Status()),
		decimalToNumeric(account.Balance().Amount()),
		account.Balance().Currency(),
		account.OwnerID(),
		account.Version(),
		timeToPgTimestamptz(account.CreatedAt()),
		timeToPgTimestamptz(account.UpdatedAt()),
	)
	if isUniqueViolation(err, "accounts_account_number_key") {
		return domain.ErrDuplicateAccountNumber
	}
	return err
}

// GetByID retrieves an account by id without locking it.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// GetByNumber retrieves an account by its account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, number)
	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by id with a FOR UPDATE row lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	q := tx.(*Tx).PgxTx()
	row := q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	return scanAccount(row)
}

// GetByIDsForUpdate locks multiple accounts. Rows are locked in the order
// of the ids slice, which callers sort beforehand.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	q := tx.(*Tx).PgxTx()

	rows, err := q.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		JOIN unnest($1::text[]) WITH ORDINALITY AS wanted(id, ord) USING (id)
		ORDER BY wanted.ord
		FOR UPDATE OF accounts`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateState persists balance, status and timestamps, guarded by the
// version the aggregate was loaded with.
func (r *AccountRepository) UpdateState(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := tx.(*Tx).PgxTx()

	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET balance = $1, status = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5`,
		decimalToNumeric(account.Balance().Amount()),
		string(account.Status()),
		timeToPgTimestamptz(account.UpdatedAt()),
		account.ID(),
		account.Version(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// ListByOwner lists an owner's accounts, newest first.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		ownerID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		id, accountNumber, accountType, status, currency, ownerID string
		balance                                                   pgtype.Numeric
		version                                                   int64
		createdAt, updatedAt                                      pgtype.Timestamptz
	)
	err := row.Scan(&id, &accountNumber, &accountType, &status, &balance, &currency, &ownerID, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	money, err := domain.NewMoney(numericToDecimal(balance), currency)
	if err != nil {
		return nil, fmt.Errorf("stored balance: %w", err)
	}

	return domain.ReconstituteAccount(
		id,
		accountNumber,
		domain.AccountType(accountType),
		domain.AccountStatus(status),
		money,
		ownerID,
		version,
		createdAt.Time,
		updatedAt.Time,
	), nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation && pgErr.ConstraintName == constraint
	}
	return false
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
