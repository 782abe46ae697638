package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/go-lyric-tokenizer/internal/server"
)

// ---------------------------------------------------------------------------
// request validation and limits
// ---------------------------------------------------------------------------

func TestEncode_OversizedBodyRejectedAs413(t *testing.T) {
	h := newTestHandler(t, server.WithMaxTextBytes(16))

	rec := post(t, h, "/encode", `{"text":"`+strings.Repeat("x", 32)+`"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %d", rec.Code)
	}

	var errBody map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}

	if errBody["error"] == "" {
		t.Error("want non-empty error field")
	}
}

func TestEncode_BodyAtLimitAccepted(t *testing.T) {
	body := `{"text":"abc"}`
	h := newTestHandler(t, server.WithMaxTextBytes(len(body)))

	rec := post(t, h, "/encode", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEndpoints_RejectWrongMethod(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/normalize", "/encode", "/decode"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s: want 405, got %d", path, rec.Code)
		}
	}
}

func TestEndpoints_RejectInvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/normalize", "/encode", "/decode"} {
		rec := post(t, h, path, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: want 400, got %d", path, rec.Code)
		}
	}
}

func TestTextEndpoints_RequireText(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{"/normalize", "/encode"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"text":""}`))
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s with empty text: want 400, got %d", path, rec.Code)
		}
	}
}

func TestEncode_ResponseIsJSON(t *testing.T) {
	h := newTestHandler(t)

	rec := post(t, h, "/encode", `{"text":"a"}`)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}
