package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"tripbound/internal/config"
	"tripbound/internal/discovery"
	"tripbound/internal/gateway"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	resolver := discovery.NewClient(cfg.RegistryURL)
	gw := gateway.New(resolver, cfg.AuthServiceName, cfg.TripServiceName, cfg.ValidateTimeout)

	addr := ":" + cfg.ServerPort
	log.Printf("Gateway listening on %s", addr)
	if err := http.ListenAndServe(addr, gw.Handler()); err != nil {
		log.Fatalf("Gateway failed: %v", err)
	}
}
