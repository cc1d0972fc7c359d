package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "pdf-ocr-converter/pkg/errors"
)

func TestRespondError(t *testing.T) {
	rr := httptest.NewRecorder()
	respondError(rr, apperrors.NewNotFoundError("task not found"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"task not found"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := fmt.Errorf("handling upload: %w", apperrors.NewValidationError("file is required"))
	respondError(rr, wrapped)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"file is required"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestRespondErrorPlain(t *testing.T) {
	rr := httptest.NewRecorder()
	respondError(rr, errors.New("disk on fire"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusTeapot, "nope")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content type application/json, got %s", ct)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"error":"nope"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestWriteErrorEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusBadRequest, `quote " in message`)

	if strings.TrimSpace(rr.Body.String()) != `{"error":"quote \" in message"}` {
		t.Fatalf("message not escaped: %s", rr.Body.String())
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusAccepted, map[string]string{"task_id": "abc"})

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"task_id":"abc"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}
