package dto

import (
	"github.com/shopspring/decimal"

	"github.com/soyRex-codes/mybank/internal/usecase"
)

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

// LoginRequest represents a credential check.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	OwnerID     string `json:"owner_id"`
	AccountType string `json:"account_type"`
	Currency    string `json:"currency"`
}

func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		OwnerID:     r.OwnerID,
		AccountType: r.AccountType,
		Currency:    r.Currency,
	}
}

// MoneyOperationRequest represents a deposit or withdrawal. The account
// comes from the URL.
type MoneyOperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
}

func (r *MoneyOperationRequest) ToUseCaseInput(accountID string) usecase.MoneyOperationInput {
	return usecase.MoneyOperationInput{
		AccountID:   accountID,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
	}
}

// TransferRequest represents a request to move money between accounts.
type TransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description,omitempty"`
}

func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		Currency:             r.Currency,
		Description:          r.Description,
	}
}
