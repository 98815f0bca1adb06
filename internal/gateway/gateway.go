package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"tripbound/internal/discovery"
	"tripbound/internal/models"
	"tripbound/internal/security"
)

// Header names of the gateway's contract: the raw token forwarded to the
// validation endpoint, and the trusted identity headers injected for
// downstream services.
const (
	HeaderAuthToken = "X-Auth-Token"
	HeaderUserID    = "userId"
	HeaderUserName  = "username"
	HeaderUserEmail = "userEmail"
)

// Gateway terminates inbound requests, validates credentials on secured
// routes, and proxies to the backing services. It never re-signs the
// identity it injects; the deployment must make the downstream services
// unreachable except through the gateway.
type Gateway struct {
	resolver    discovery.Resolver
	authService string
	tripService string
	client      *http.Client
	limiter     *security.RateLimiter
}

// New creates a gateway. validateTimeout bounds the token-validation
// round trip.
func New(resolver discovery.Resolver, authService, tripService string, validateTimeout time.Duration) *Gateway {
	return &Gateway{
		resolver:    resolver,
		authService: authService,
		tripService: tripService,
		client:      &http.Client{Timeout: validateTimeout},
		limiter:     security.NewRateLimiter(120, time.Minute),
	}
}

// Handler returns the gateway's route table. Auth routes pass through
// unmodified; everything else is secured.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/auth/", g.proxyTo(g.authService))
	mux.Handle("/trips", g.authenticate(g.proxyTo(g.tripService)))
	mux.Handle("/trips/", g.authenticate(g.proxyTo(g.tripService)))
	mux.Handle("/participants/", g.authenticate(g.proxyTo(g.tripService)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})

	return g.rateLimit(mux)
}

// authenticate validates the bearer token and rewrites the request with
// the trusted identity headers before passing it on.
func (g *Gateway) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := extractBearerToken(r)
		if !ok {
			writeAuthError(w, "missing credentials")
			return
		}

		identity, upstreamBody, err := g.validateToken(r, tokenString)
		if err != nil {
			if upstreamBody != nil {
				// Client error from the validation endpoint: pass the
				// upstream body through verbatim
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write(upstreamBody)
				return
			}
			log.Printf("Token validation failed: %v", err)
			writeAuthError(w, "token validation failed")
			return
		}

		// Strip any inbound identity headers so they cannot be forged
		// around the validation step
		r.Header.Del(HeaderUserID)
		r.Header.Del(HeaderUserName)
		r.Header.Del(HeaderUserEmail)

		r.Header.Set(HeaderUserID, identity.ID)
		r.Header.Set(HeaderUserName, identity.Name)
		r.Header.Set(HeaderUserEmail, identity.Email)

		next.ServeHTTP(w, r)
	})
}

// validateToken calls the identity service's validation endpoint,
// resolving its address fresh for every call. A non-nil upstreamBody
// signals a client-error response that must be relayed verbatim.
func (g *Gateway) validateToken(r *http.Request, tokenString string) (*models.ValidatedIdentity, []byte, error) {
	base, err := g.resolver.Resolve(r.Context(), g.authService)
	if err != nil {
		return nil, nil, fmt.Errorf("validation unavailable: %w", err)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, base+"/auth/validate", nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set(HeaderAuthToken, tokenString)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("validation call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, body, fmt.Errorf("credentials rejected with status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("validation returned status %d", resp.StatusCode)
	}

	var identity models.ValidatedIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, nil, fmt.Errorf("failed to decode validation response: %w", err)
	}
	return &identity, nil, nil
}

// proxyTo forwards the request to a freshly resolved instance of the
// named service.
func (g *Gateway) proxyTo(service string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base, err := g.resolver.Resolve(r.Context(), service)
		if err != nil {
			log.Printf("Failed to resolve %s: %v", service, err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
			return
		}

		target, err := url.Parse(base)
		if err != nil {
			log.Printf("Bad instance URL for %s: %v", service, err)
			http.Error(w, "service unavailable", http.StatusBadGateway)
			return
		}

		httputil.NewSingleHostReverseProxy(target).ServeHTTP(w, r)
	})
}

func (g *Gateway) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.limiter.Allow(security.GetClientIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`+"\n", message)
}
