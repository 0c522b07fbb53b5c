package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// FindInconsistentAccounts returns accounts whose balance does not match
// the balance_after of their newest ledger entry. Accounts with no
// entries are consistent when their balance is zero.
func (r *LedgerRepository) FindInconsistentAccounts(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id
		FROM accounts a
		LEFT JOIN LATERAL (
			SELECT t.balance_after
			FROM transactions t
			WHERE t.account_id = a.id
			ORDER BY t.created_at DESC, t.id DESC
			LIMIT 1
		) latest ON true
		WHERE a.balance <> COALESCE(latest.balance_after, 0)
		ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
