package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Trusted identity headers injected by the gateway. Their presence is
// the authentication signal downstream; the services behind the gateway
// must not be reachable directly, or these headers could be forged.
const (
	HeaderUserID    = "userId"
	HeaderUserName  = "username"
	HeaderUserEmail = "userEmail"
)

// Caller is the identity asserted by the gateway for the current request
type Caller struct {
	ID    string
	Name  string
	Email string
}

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const CallerContextKey ContextKey = "caller"

// RequireIdentity is middleware that requires the gateway's trusted
// identity headers
func RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := Caller{
			ID:    r.Header.Get(HeaderUserID),
			Name:  r.Header.Get(HeaderUserName),
			Email: r.Header.Get(HeaderUserEmail),
		}
		if caller.ID == "" || caller.Email == "" {
			respondWithError(w, http.StatusUnauthorized, "missing identity", nil)
			return
		}

		ctx := context.WithValue(r.Context(), CallerContextKey, caller)
		next(w, r.WithContext(ctx))
	}
}

// GetCallerFromContext retrieves the caller identity from the request context
func GetCallerFromContext(ctx context.Context) Caller {
	caller, _ := ctx.Value(CallerContextKey).(Caller)
	return caller
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
