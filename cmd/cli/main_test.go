package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("freeze"); got != "Freeze" {
		t.Fatalf("expected Freeze, got %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Fatalf("expected empty string unchanged, got %q", got)
	}
}

func TestGetJSONPrintsIndentedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/acc-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acc-1"}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		getJSON("/api/v1/accounts/acc-1")
	})

	if !strings.Contains(out, "\"id\": \"acc-1\"") {
		t.Fatalf("expected indented body, got %q", out)
	}
}

func TestPostJSONSendsPayload(t *testing.T) {
	var received []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	origURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = origURL }()

	captureOutput(t, func() {
		postJSON("/api/v1/transfers", map[string]string{"amount": "10"})
	})

	if !strings.Contains(string(received), `"amount":"10"`) {
		t.Fatalf("expected payload to be sent, got %s", string(received))
	}
}
