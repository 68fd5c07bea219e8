package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
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

func TestDoRequestSendsTokenAndPrintsResponse(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"entry-1","type":"deposit"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second
	token = "session-token"

	out := captureOutput(t, func() {
		doRequest(http.MethodPost, "/api/v1/statements/deposit", map[string]any{
			"amount": "12",
		})
	})

	if gotAuth != "Bearer session-token" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
	if gotBody["amount"] != "12" {
		t.Fatalf("expected amount in request body, got %v", gotBody)
	}
	if !strings.Contains(out, "Status: 201") {
		t.Fatalf("expected status line in output, got %q", out)
	}
	if !strings.Contains(out, `"id": "entry-1"`) {
		t.Fatalf("expected indented response body, got %q", out)
	}
}

func TestDoRequestWithoutTokenOmitsAuthHeader(t *testing.T) {
	var sawAuthHeader bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second
	token = ""

	captureOutput(t, func() {
		doRequest(http.MethodGet, "/health", nil)
	})

	if sawAuthHeader {
		t.Fatalf("expected no Authorization header without a token")
	}
}
