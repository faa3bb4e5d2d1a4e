package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

func TestWriteErrorLogsRejectedBodies(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		logged  bool
		snippet string
	}{
		{name: "oversized", err: errs.NewMaxBodySizeExceededError(10), status: http.StatusRequestEntityTooLarge, logged: true, snippet: "10 bytes"},
		{name: "malformed", err: errs.NewMalformedPayloadError("project", errors.New("unexpected EOF")), status: http.StatusBadRequest, logged: true, snippet: "unexpected EOF"},
		{name: "missing field", err: errs.NewMissingRequiredFieldError("title"), status: http.StatusBadRequest},
		{name: "unauthorized", err: errs.Unauthorized, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()
			NewResponder(zerolog.New(&buf)).WriteError(rec, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			logged := strings.Contains(buf.String(), "request body rejected")
			if logged != tt.logged {
				t.Fatalf("logged = %v, want %v: %s", logged, tt.logged, buf.String())
			}
			if tt.logged && !strings.Contains(buf.String(), tt.snippet) {
				t.Fatalf("log missing %q: %s", tt.snippet, buf.String())
			}
		})
	}
}

func TestRecoveredPanicAnswersWithGenericError(t *testing.T) {
	var buf bytes.Buffer
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ctxWithLogger(req.Context(), zerolog.New(&buf)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked: %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "panic -> boom") {
		t.Fatalf("cause not logged: %s", buf.String())
	}
}
