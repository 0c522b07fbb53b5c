package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrCurrencyMismatch = errors.New("cannot operate on different currencies")
	ErrNegativeResult   = errors.New("result cannot be negative")

	// Account errors
	ErrAccountNotActive       = errors.New("account is not active")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrSameAccountTransfer    = errors.New("cannot transfer to the same account")
	ErrInvalidStateTransition = errors.New("invalid account state transition")
	ErrNonZeroBalance         = errors.New("cannot close account with non-zero balance")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrAccountNotFound        = errors.New("account not found")
	ErrSourceNotFound         = errors.New("source account not found")
	ErrDestinationNotFound    = errors.New("destination account not found")
	ErrDuplicateAccountNumber = errors.New("account number already exists")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateReference  = errors.New("transaction reference number already exists")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidName  = errors.New("name cannot be empty")
	ErrUserInactive = errors.New("user account is inactive")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// Store errors
	ErrConcurrentModification = errors.New("account was modified concurrently")
)
