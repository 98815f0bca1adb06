package main

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tripbound/internal/config"
	"tripbound/internal/database"
	"tripbound/internal/discovery"
	"tripbound/internal/handlers"
	"tripbound/internal/repository"
	"tripbound/internal/service"
	"tripbound/internal/token"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	privateKey, publicKey, err := loadKeys(cfg)
	if err != nil {
		log.Fatalf("Failed to load signing keys: %v", err)
	}

	tokenService := token.NewService(privateKey, publicKey, cfg.TokenIssuer, cfg.TokenDuration)
	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, tokenService)
	authHandler := handlers.NewAuthHandler(authService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = cfg.AuthServiceName
	}
	advertiseURL := cfg.AdvertiseURL
	if advertiseURL == "" {
		advertiseURL = fmt.Sprintf("http://localhost:%s", cfg.ServerPort)
	}
	go discovery.NewClient(cfg.RegistryURL).Announce(ctx, serviceName, advertiseURL, cfg.HeartbeatInterval)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: authHandler.Routes(),
	}

	go func() {
		log.Printf("Auth server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Auth server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down auth server...")
	cancel()
	server.Shutdown(context.Background())
}

func loadKeys(cfg *config.Config) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if cfg.JWTPrivateKeyPath != "" && cfg.JWTPublicKeyPath != "" {
		privateKey, err := token.LoadPrivateKey(cfg.JWTPrivateKeyPath)
		if err != nil {
			return nil, nil, err
		}
		publicKey, err := token.LoadPublicKey(cfg.JWTPublicKeyPath)
		if err != nil {
			return nil, nil, err
		}
		return privateKey, publicKey, nil
	}

	log.Println("Warning: no JWT key paths configured, generating ephemeral dev keypair")
	privateKey, err := token.GenerateDevKeypair()
	if err != nil {
		return nil, nil, err
	}
	return privateKey, &privateKey.PublicKey, nil
}
