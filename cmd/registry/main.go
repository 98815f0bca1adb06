package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"tripbound/internal/config"
	"tripbound/internal/discovery"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	registry := discovery.NewRegistry(3 * cfg.HeartbeatInterval)

	addr := ":" + cfg.ServerPort
	log.Printf("Service registry listening on %s", addr)
	if err := http.ListenAndServe(addr, registry.Handler()); err != nil {
		log.Fatalf("Registry failed: %v", err)
	}
}
