package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusConflict, map[string]string{"error": "a search is already running"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["error"] != "a search is already running" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("FORCEDCHESS_TEST_INT", "not-a-number")
	if got := envInt("FORCEDCHESS_TEST_INT", 7); got != 7 {
		t.Fatalf("non-numeric value should fall back, got %d", got)
	}
	t.Setenv("FORCEDCHESS_TEST_INT", "42")
	if got := envInt("FORCEDCHESS_TEST_INT", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := envBool("FORCEDCHESS_TEST_MISSING_BOOL", true); !got {
		t.Fatalf("missing key should fall back to true")
	}
	if got := envString("FORCEDCHESS_TEST_MISSING_STR", "fallback"); got != "fallback" {
		t.Fatalf("missing key should fall back, got %q", got)
	}
}
