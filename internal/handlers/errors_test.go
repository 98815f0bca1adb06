package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripbound/internal/directory"
	"tripbound/internal/service"
	"tripbound/internal/token"
	"tripbound/internal/validation"
)

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"access denied", service.ErrAccessDenied, http.StatusForbidden},
		{"wrapped access denied", fmt.Errorf("%w: only the trip owner may update this", service.ErrAccessDenied), http.StatusForbidden},
		{"trip not found", service.ErrTripNotFound, http.StatusNotFound},
		{"activity not found", service.ErrActivityNotFound, http.StatusNotFound},
		{"link not found", service.ErrLinkNotFound, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"directory user not found", directory.ErrUserNotFound, http.StatusNotFound},
		{"invalid invite", service.ErrInvalidInvite, http.StatusBadRequest},
		{"invalid date", service.ErrInvalidDate, http.StatusBadRequest},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", token.ErrTokenInvalid, http.StatusUnauthorized},
		{"field error", validation.FieldError{Field: "email", Message: "email is required"}, http.StatusBadRequest},
		{"aggregated field errors", validation.Errors{{Field: "email", Message: "email is required"}}, http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithServiceError(w, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestInternalErrorsDoNotLeakDetail(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithServiceError(w, errors.New("pq: connection refused on 10.0.0.5"))

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Errorf("Error = %q, internal detail must stay server-side", resp.Error)
	}
}

func TestInvalidInviteDetailIsHidden(t *testing.T) {
	// Wrapped context on an invalid-invite error must not reach the
	// caller, or a probe could distinguish revoked from never-issued
	w := httptest.NewRecorder()
	respondWithServiceError(w, fmt.Errorf("%w: claimed by concurrent request", service.ErrInvalidInvite))

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Error != service.ErrInvalidInvite.Error() {
		t.Errorf("Error = %q, want %q", resp.Error, service.ErrInvalidInvite.Error())
	}
}

func TestValidationErrorsCarryFields(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithServiceError(w, validation.Errors{
		{Field: "email", Message: "email is required"},
		{Field: "name", Message: "name is required"},
	})

	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if resp.Error != "validation failed" {
		t.Errorf("Error = %q, want %q", resp.Error, "validation failed")
	}
	if len(resp.Fields) != 2 {
		t.Errorf("fields = %d, want 2", len(resp.Fields))
	}
}
