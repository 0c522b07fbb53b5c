package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/infrastructure/auth"
)

func TestAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret-key", time.Hour)
	token, err := manager.Generate(&domain.User{ID: "user-1", Email: "maya.chen@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r.Context())
		if !ok {
			t.Fatal("expected claims in context")
		}
		if claims.UserID != "user-1" {
			t.Fatalf("expected user-1, got %s", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			Auth(manager)(next).ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestAuth_RejectsTokenFromOtherSecret(t *testing.T) {
	other := auth.NewJWTManager("other-secret", time.Hour)
	token, err := other.Generate(&domain.User{ID: "user-1", Email: "maya.chen@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	manager := auth.NewJWTManager("test-secret-key", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	Auth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a forged token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
