package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"tripbound/internal/service"
)

// HeaderAuthToken carries the raw bearer token on the gateway's
// validation call.
const HeaderAuthToken = "X-Auth-Token"

// AuthHandler exposes the identity service's HTTP surface
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	signed, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{
		Token: signed,
		User:  userResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// Validate handles POST /auth/validate: the gateway forwards the raw
// bearer token in a custom header and receives either the validated
// identity or a client error whose body it passes through verbatim.
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	tokenString := r.Header.Get(HeaderAuthToken)
	if tokenString == "" {
		// Drain the body so keep-alive connections can be reused
		io.Copy(io.Discard, r.Body)
		respondWithError(w, http.StatusUnauthorized, "missing token", nil)
		return
	}

	identity, err := h.authService.Validate(tokenString)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, identity)
}

// Lookup handles GET /users/lookup?email=, the user-directory endpoint
// the invite workflow resolves invitees against.
func (h *AuthHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}

	user, err := h.authService.LookupByEmail(email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email, Name: user.Name})
}

// Routes returns the identity service's route table
func (h *AuthHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/validate", h.Validate)
	mux.HandleFunc("GET /users/lookup", h.Lookup)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return Logging(mux)
}
