package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripbound/internal/discovery"
)

var ErrUserNotFound = errors.New("user not found in directory")

// Identity is the canonical identity the directory resolves an email to
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Directory resolves an email address to a canonical user identity
type Directory interface {
	LookupByEmail(ctx context.Context, email string) (*Identity, error)
}

// Client queries the identity service's lookup endpoint, resolving its
// address through service discovery on every call.
type Client struct {
	resolver    discovery.Resolver
	serviceName string
	httpClient  *http.Client
}

// NewClient creates a directory client. The timeout bounds the whole
// lookup including the discovery round trip.
func NewClient(resolver discovery.Resolver, serviceName string, timeout time.Duration) *Client {
	return &Client{
		resolver:    resolver,
		serviceName: serviceName,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// LookupByEmail resolves an email to the canonical (id, name, email)
func (c *Client) LookupByEmail(ctx context.Context, email string) (*Identity, error) {
	base, err := c.resolver.Resolve(ctx, c.serviceName)
	if err != nil {
		return nil, fmt.Errorf("directory unavailable: %w", err)
	}

	lookupURL := fmt.Sprintf("%s/users/lookup?email=%s", base, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory lookup returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}
	return &identity, nil
}
