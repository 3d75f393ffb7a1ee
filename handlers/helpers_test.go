package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/basketball-league/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", services.ErrTeamNotFound, http.StatusNotFound},
		{"validation", services.ErrValidationFailed, http.StatusBadRequest},
		{"wrapped validation", services.ErrTournamentTeamCountInvalid, http.StatusBadRequest},
		{"bracket state", services.ErrInvalidBracketState, http.StatusBadRequest},
		{"already complete", services.ErrTournamentAlreadyComplete, http.StatusBadRequest},
		{"incomplete tournament", services.ErrIncompleteTournament, http.StatusConflict},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"username taken", services.ErrUsernameTaken, http.StatusConflict},
		{"short password", services.ErrPasswordTooShort, http.StatusBadRequest},
		{"permission denied", services.ErrPermissionDenied, http.StatusForbidden},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)

			mapServiceErrorToHTTP(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if _, ok := body["error"]; !ok {
				t.Error("response has no error field")
			}
		})
	}
}

func TestWriteJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	if err := writeJSON(rec, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}
