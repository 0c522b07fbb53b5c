package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
)

func TestMetricsRecordsRequest(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	Metrics(m)(next).ServeHTTP(rr, req)

	if !handlerCalled {
		t.Fatal("next handler was not invoked")
	}

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/health", "418")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "account path without suffix",
			input:    "/api/v1/accounts/01J9ZX2M4N5P6Q7R",
			expected: "/api/v1/accounts/{id}",
		},
		{
			name:     "account path with suffix",
			input:    "/api/v1/accounts/01J9ZX2M4N5P6Q7R/transactions",
			expected: "/api/v1/accounts/{id}/transactions",
		},
		{
			name:     "short segments untouched",
			input:    "/api/v1/health",
			expected: "/api/v1/health",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
