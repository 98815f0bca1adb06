package discovery

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"
)

// instance is one registered backend with its last heartbeat
type instance struct {
	URL      string
	LastSeen time.Time
}

// Registry is a minimal in-memory service registry. Services register
// themselves with periodic heartbeats; lookups return only instances
// whose heartbeat is fresher than the TTL.
type Registry struct {
	mu       sync.RWMutex
	services map[string]map[string]*instance
	ttl      time.Duration
}

// NewRegistry creates a registry with the given instance TTL
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		services: make(map[string]map[string]*instance),
		ttl:      ttl,
	}
}

// Register records or refreshes an instance of a service
func (r *Registry) Register(service, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.services[service] == nil {
		r.services[service] = make(map[string]*instance)
	}
	r.services[service][url] = &instance{URL: url, LastSeen: time.Now()}
}

// Instances returns the URLs of live instances of a service
func (r *Registry) Instances(service string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cutoff := time.Now().Add(-r.ttl)
	var urls []string
	for _, inst := range r.services[service] {
		if inst.LastSeen.After(cutoff) {
			urls = append(urls, inst.URL)
		}
	}
	return urls
}

type registerRequest struct {
	URL string `json:"url"`
}

type instancesResponse struct {
	Instances []string `json:"instances"`
}

// Handler returns the registry's HTTP surface
func (r *Registry) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("PUT /services/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := req.PathValue("name")

		var body registerRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.URL == "" {
			http.Error(w, "invalid registration body", http.StatusBadRequest)
			return
		}

		r.Register(name, body.URL)
		log.Printf("Registered %s instance at %s", name, body.URL)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /services/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := req.PathValue("name")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(instancesResponse{Instances: r.Instances(name)})
	})

	return mux
}
