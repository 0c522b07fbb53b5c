package domain

import "time"

// Event types
const (
	EventTypeAccountOpened    = "account.opened"
	EventTypeFundsDeposited   = "funds.deposited"
	EventTypeFundsWithdrawn   = "funds.withdrawn"
	EventTypeFundsTransferred = "funds.transferred"
)

// Aggregate types
const (
	AggregateTypeAccount = "account"
)

// Event is a fact produced by an aggregate operation. Operations return
// events explicitly; there is no hidden event queue on the aggregate. The
// caller decides what to do with them, typically writing them to the outbox
// within the same unit of work as the state change.
type Event interface {
	EventType() string
	AggregateID() string
	Payload() map[string]any
}

// OutboxEvent is an event staged for publication. Delivery is handled
// outside this service; the ledger only guarantees the event is recorded
// atomically with the state change that produced it.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// AccountOpened is raised when a new account is created.
type AccountOpened struct {
	AccountID     string
	OwnerID       string
	AccountNumber string
	Type          AccountType
	Currency      string
}

func (e AccountOpened) EventType() string   { return EventTypeAccountOpened }
func (e AccountOpened) AggregateID() string { return e.AccountID }

func (e AccountOpened) Payload() map[string]any {
	return map[string]any{
		"account_id":     e.AccountID,
		"owner_id":       e.OwnerID,
		"account_number": e.AccountNumber,
		"type":           string(e.Type),
		"currency":       e.Currency,
	}
}

// FundsDeposited is raised by a successful deposit.
type FundsDeposited struct {
	AccountID string
	Amount    Money
	Balance   Money
	Reference string
}

func (e FundsDeposited) EventType() string   { return EventTypeFundsDeposited }
func (e FundsDeposited) AggregateID() string { return e.AccountID }

func (e FundsDeposited) Payload() map[string]any {
	return map[string]any{
		"account_id": e.AccountID,
		"amount":     e.Amount.Amount().String(),
		"balance":    e.Balance.Amount().String(),
		"currency":   e.Amount.Currency(),
		"reference":  e.Reference,
	}
}

// FundsWithdrawn is raised by a successful withdrawal.
type FundsWithdrawn struct {
	AccountID string
	Amount    Money
	Balance   Money
	Reference string
}

func (e FundsWithdrawn) EventType() string   { return EventTypeFundsWithdrawn }
func (e FundsWithdrawn) AggregateID() string { return e.AccountID }

func (e FundsWithdrawn) Payload() map[string]any {
	return map[string]any{
		"account_id": e.AccountID,
		"amount":     e.Amount.Amount().String(),
		"balance":    e.Balance.Amount().String(),
		"currency":   e.Amount.Currency(),
		"reference":  e.Reference,
	}
}

// FundsTransferred is raised by a successful transfer between two accounts.
type FundsTransferred struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               Money
	OutgoingReference    string
	IncomingReference    string
}

func (e FundsTransferred) EventType() string   { return EventTypeFundsTransferred }
func (e FundsTransferred) AggregateID() string { return e.SourceAccountID }

func (e FundsTransferred) Payload() map[string]any {
	return map[string]any{
		"source_account_id":      e.SourceAccountID,
		"destination_account_id": e.DestinationAccountID,
		"amount":                 e.Amount.Amount().String(),
		"currency":               e.Amount.Currency(),
		"outgoing_reference":     e.OutgoingReference,
		"incoming_reference":     e.IncomingReference,
	}
}
