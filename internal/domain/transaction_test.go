package domain

import (
	"regexp"
	"testing"
	"time"
)

var referenceFormat = regexp.MustCompile(`^TXN-\d{8}-[0-9A-F]{8}$`)

func TestTransaction_ReferenceNumberFormat(t *testing.T) {
	acc := newTestAccount(t, "0")

	txn, _, err := acc.Deposit(mustMoney(t, "10", "USD"), "")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	ref := txn.ReferenceNumber()
	if !referenceFormat.MatchString(ref) {
		t.Fatalf("reference %q does not match TXN-YYYYMMDD-XXXXXXXX", ref)
	}

	wantDate := time.Now().UTC().Format("20060102")
	if got := ref[4:12]; got != wantDate {
		t.Errorf("reference date = %s, want %s", got, wantDate)
	}
}

func TestTransaction_ReferencesAreUnique(t *testing.T) {
	acc := newTestAccount(t, "0")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		txn, _, err := acc.Deposit(mustMoney(t, "1", "USD"), "")
		if err != nil {
			t.Fatalf("Deposit: %v", err)
		}

		if seen[txn.ReferenceNumber()] {
			t.Fatalf("duplicate reference %s", txn.ReferenceNumber())
		}
		seen[txn.ReferenceNumber()] = true
	}
}

func TestTransaction_Timestamps(t *testing.T) {
	acc := newTestAccount(t, "0")

	before := time.Now().UTC()
	txn, _, err := acc.Deposit(mustMoney(t, "10", "USD"), "")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	after := time.Now().UTC()

	created := txn.CreatedAt()
	if created.Before(before) || created.After(after) {
		t.Errorf("createdAt %s outside [%s, %s]", created, before, after)
	}

	if created.Location() != time.UTC {
		t.Errorf("createdAt not UTC: %s", created.Location())
	}
}

func TestReconstituteTransaction(t *testing.T) {
	amount := mustMoney(t, "25", "USD")
	balance := mustMoney(t, "125", "USD")
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	txn := ReconstituteTransaction(
		"txn-1", "acc-1",
		TransactionTypeTransferIn, TransactionStatusCompleted,
		amount, balance,
		"Transfer from 123456789012", "acc-2", "TXN-20250301-AB12CD34",
		created,
	)

	if txn.ID() != "txn-1" || txn.AccountID() != "acc-1" {
		t.Errorf("ids = %s/%s", txn.ID(), txn.AccountID())
	}

	if txn.Type() != TransactionTypeTransferIn || txn.RelatedAccountID() != "acc-2" {
		t.Errorf("type=%s related=%s", txn.Type(), txn.RelatedAccountID())
	}

	if !txn.Amount().Equal(amount) || !txn.BalanceAfter().Equal(balance) {
		t.Errorf("amount=%s balanceAfter=%s", txn.Amount(), txn.BalanceAfter())
	}

	if !txn.CreatedAt().Equal(created) {
		t.Errorf("createdAt = %s", txn.CreatedAt())
	}
}

func TestTransactionStatus_ReservedValues(t *testing.T) {
	reserved := []TransactionStatus{
		TransactionStatusPending,
		TransactionStatusFailed,
		TransactionStatusReversed,
	}

	for _, status := range reserved {
		if status == TransactionStatusCompleted {
			t.Errorf("reserved status %q collides with completed", status)
		}
	}

	if TransactionStatusReversed != "reversed" {
		t.Errorf("reversed status = %q", TransactionStatusReversed)
	}
}
