package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tripbound/internal/directory"
	"tripbound/internal/service"
	"tripbound/internal/token"
	"tripbound/internal/validation"
)

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondWithJSON(w, status, errorResponse{Error: userMsg})
}

// respondWithServiceError maps a service-layer failure to its HTTP
// status. Only unknown errors get the generic internal message; every
// recognized kind surfaces its specific message.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var fieldErr validation.FieldError
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fieldErrs})
	case errors.As(err, &fieldErr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: validation.Errors{fieldErr}})
	case errors.Is(err, service.ErrAccessDenied):
		respondWithJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrTripNotFound),
		errors.Is(err, service.ErrActivityNotFound),
		errors.Is(err, service.ErrLinkNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, directory.ErrUserNotFound):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidInvite):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: service.ErrInvalidInvite.Error()})
	case errors.Is(err, service.ErrInvalidDate):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, token.ErrTokenInvalid):
		respondWithJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		// Full detail stays server-side
		respondWithError(w, http.StatusInternalServerError, "internal server error", err)
	}
}
