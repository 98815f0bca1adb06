package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// ErrNoInstances is returned when a service has no live registered
// instances. Callers surface it as a failure of the call they were
// about to make, not as a discovery-specific error.
var ErrNoInstances = errors.New("no instances registered")

// Resolver resolves a service name to a live instance base URL
type Resolver interface {
	Resolve(ctx context.Context, service string) (string, error)
}

// Client resolves services against the registry. Every Resolve call
// performs a fresh lookup; instance lists are deliberately not cached so
// deregistered backends stop receiving traffic immediately.
type Client struct {
	registryURL string
	httpClient  *http.Client
}

// NewClient creates a discovery client against the registry base URL
func NewClient(registryURL string) *Client {
	return &Client{
		registryURL: registryURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve returns the base URL of one live instance of the service,
// chosen at random for naive load spreading.
func (c *Client) Resolve(ctx context.Context, service string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/services/%s", c.registryURL, service), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("registry lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		Instances []string `json:"instances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode registry response: %w", err)
	}

	if len(body.Instances) == 0 {
		return "", fmt.Errorf("%w for service %s", ErrNoInstances, service)
	}

	return body.Instances[rand.Intn(len(body.Instances))], nil
}

// Announce registers this instance and keeps heartbeating until the
// context is canceled. Run it in its own goroutine at startup.
func (c *Client) Announce(ctx context.Context, service, advertiseURL string, interval time.Duration) {
	register := func() {
		if err := c.register(ctx, service, advertiseURL); err != nil {
			log.Printf("Failed to register %s with registry: %v", service, err)
		}
	}

	register()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			register()
		}
	}
}

func (c *Client) register(ctx context.Context, service, advertiseURL string) error {
	payload, err := json.Marshal(map[string]string{"url": advertiseURL})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fmt.Sprintf("%s/services/%s", c.registryURL, service), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("registry returned status %d", resp.StatusCode)
	}
	return nil
}
