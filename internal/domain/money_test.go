package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustMoney(t *testing.T, amount string, currency string) Money {
	t.Helper()

	d, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", amount, err)
	}

	m, err := NewMoney(d, currency)
	if err != nil {
		t.Fatalf("NewMoney(%s, %s): %v", amount, currency, err)
	}

	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		currency     string
		wantErr      error
		wantAmount   string
		wantCurrency string
	}{
		{
			name:         "rounds to two decimals",
			amount:       "10.999",
			currency:     "usd",
			wantAmount:   "11.00",
			wantCurrency: "USD",
		},
		{
			name:         "uppercases currency",
			amount:       "5",
			currency:     "eur",
			wantAmount:   "5.00",
			wantCurrency: "EUR",
		},
		{
			name:         "rounds midpoint to even down",
			amount:       "10.005",
			currency:     "USD",
			wantAmount:   "10.00",
			wantCurrency: "USD",
		},
		{
			name:         "rounds midpoint to even up",
			amount:       "10.015",
			currency:     "USD",
			wantAmount:   "10.02",
			wantCurrency: "USD",
		},
		{
			name:         "rounds above midpoint up",
			amount:       "1.006",
			currency:     "USD",
			wantAmount:   "1.01",
			wantCurrency: "USD",
		},
		{
			name:     "rejects negative amount",
			amount:   "-0.01",
			currency: "USD",
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "rejects empty currency",
			amount:   "1",
			currency: "",
			wantErr:  ErrInvalidCurrency,
		},
		{
			name:     "rejects whitespace currency",
			amount:   "1",
			currency: "   ",
			wantErr:  ErrInvalidCurrency,
		},
		{
			name:     "rejects non-letter currency",
			amount:   "1",
			currency: "U1D",
			wantErr:  ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad decimal: %v", err)
			}

			m, err := NewMoney(d, tt.currency)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := m.Amount().StringFixed(2); got != tt.wantAmount {
				t.Errorf("amount = %s, want %s", got, tt.wantAmount)
			}

			if m.Currency() != tt.wantCurrency {
				t.Errorf("currency = %s, want %s", m.Currency(), tt.wantCurrency)
			}
		})
	}
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		sum, err := mustMoney(t, "10", "USD").Add(mustMoney(t, "5.55", "USD"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !sum.Equal(mustMoney(t, "15.55", "USD")) {
			t.Errorf("sum = %s", sum)
		}
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := mustMoney(t, "10", "USD").Add(mustMoney(t, "5", "EUR"))
		if !errors.Is(err, ErrCurrencyMismatch) {
			t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestMoney_Sub(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		want    string
		wantErr error
	}{
		{
			name: "positive result",
			a:    mustMoney(t, "10", "USD"),
			b:    mustMoney(t, "4.50", "USD"),
			want: "5.50",
		},
		{
			name: "exact to zero",
			a:    mustMoney(t, "10", "USD"),
			b:    mustMoney(t, "10", "USD"),
			want: "0.00",
		},
		{
			name:    "negative result rejected",
			a:       mustMoney(t, "10", "USD"),
			b:       mustMoney(t, "10.01", "USD"),
			wantErr: ErrNegativeResult,
		},
		{
			name:    "currency mismatch",
			a:       mustMoney(t, "10", "USD"),
			b:       mustMoney(t, "1", "GBP"),
			wantErr: ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.a.Sub(tt.b)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := result.Amount().StringFixed(2); got != tt.want {
				t.Errorf("result = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoney_Mul(t *testing.T) {
	m := mustMoney(t, "10.10", "USD")

	result, err := m.Mul(decimal.NewFromInt(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Amount().StringFixed(2); got != "30.30" {
		t.Errorf("result = %s, want 30.30", got)
	}
}

func TestMoney_Comparisons(t *testing.T) {
	ten := mustMoney(t, "10", "USD")
	five := mustMoney(t, "5", "USD")

	gt, err := ten.GreaterThan(five)
	if err != nil || !gt {
		t.Errorf("10 > 5 = %v, %v", gt, err)
	}

	lt, err := five.LessThan(ten)
	if err != nil || !lt {
		t.Errorf("5 < 10 = %v, %v", lt, err)
	}

	gte, err := ten.GreaterThanOrEqual(mustMoney(t, "10", "USD"))
	if err != nil || !gte {
		t.Errorf("10 >= 10 = %v, %v", gte, err)
	}

	lte, err := ten.LessThanOrEqual(five)
	if err != nil || lte {
		t.Errorf("10 <= 5 = %v, %v", lte, err)
	}

	if _, err := ten.GreaterThan(mustMoney(t, "1", "EUR")); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoney_Equal(t *testing.T) {
	if !mustMoney(t, "10.00", "USD").Equal(mustMoney(t, "10", "usd")) {
		t.Error("10.00 USD should equal 10 usd")
	}

	if mustMoney(t, "10", "USD").Equal(mustMoney(t, "10", "EUR")) {
		t.Error("same amount different currency should not be equal")
	}
}

func TestZero(t *testing.T) {
	z, err := Zero("usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !z.IsZero() || z.Currency() != "USD" {
		t.Errorf("zero = %s", z)
	}

	if _, err := Zero(""); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestMoney_String(t *testing.T) {
	if got := mustMoney(t, "10.5", "USD").String(); got != "USD 10.50" {
		t.Errorf("String() = %q", got)
	}
}
