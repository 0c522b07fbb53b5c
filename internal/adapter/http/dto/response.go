package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Status        string          `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	OwnerID       string          `json:"owner_id"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID(),
		AccountNumber: a.AccountNumber(),
		AccountType:   string(a.Type()),
		Status:        string(a.Status()),
		Balance:       a.Balance().Amount(),
		Currency:      a.Balance().Currency(),
		OwnerID:       a.OwnerID(),
		Version:       a.Version(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"account_id"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	Description      string          `json:"description"`
	RelatedAccountID string          `json:"related_account_id,omitempty"`
	ReferenceNumber  string          `json:"reference_number"`
	CreatedAt        time.Time       `json:"created_at"`
}

func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:               t.ID(),
		AccountID:        t.AccountID(),
		Type:             string(t.Type()),
		Status:           string(t.Status()),
		Amount:           t.Amount().Amount(),
		Currency:         t.Amount().Currency(),
		BalanceAfter:     t.BalanceAfter().Amount(),
		Description:      t.Description(),
		RelatedAccountID: t.RelatedAccountID(),
		ReferenceNumber:  t.ReferenceNumber(),
		CreatedAt:        t.CreatedAt(),
	}
}

func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse carries both legs of a completed transfer.
type TransferResponse struct {
	Outgoing *TransactionResponse `json:"outgoing"`
	Incoming *TransactionResponse `json:"incoming"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string        `json:"token,omitempty"`
	User  *UserResponse `json:"user"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// LedgerAuditResponse reports the result of a consistency check.
type LedgerAuditResponse struct {
	Consistent         bool     `json:"consistent"`
	MismatchedAccounts []string `json:"mismatched_accounts,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
