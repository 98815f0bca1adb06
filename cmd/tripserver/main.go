package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tripbound/internal/config"
	"tripbound/internal/database"
	"tripbound/internal/directory"
	"tripbound/internal/discovery"
	"tripbound/internal/events"
	"tripbound/internal/handlers"
	"tripbound/internal/repository"
	"tripbound/internal/service"
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

	redisClient := events.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()
	publisher := events.NewRedisPublisher(redisClient, cfg.EventStream)

	resolver := discovery.NewClient(cfg.RegistryURL)
	userDirectory := directory.NewClient(resolver, cfg.AuthServiceName, cfg.DirectoryTimeout)

	tripRepo := repository.NewTripRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	linkRepo := repository.NewLinkRepository(db)

	tripService := service.NewTripService(tripRepo)
	inviteService := service.NewInviteService(tripService, inviteRepo, userDirectory, publisher)
	admissionService := service.NewAdmissionService(db, tripService, inviteRepo)
	participantService := service.NewParticipantService(tripService, participantRepo)
	activityService := service.NewActivityService(tripService, activityRepo)
	linkService := service.NewLinkService(tripService, linkRepo)

	routes := handlers.TripServerRoutes(
		handlers.NewTripHandler(tripService, admissionService, participantService),
		handlers.NewInviteHandler(inviteService),
		handlers.NewActivityHandler(activityService),
		handlers.NewLinkHandler(linkService),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = cfg.TripServiceName
	}
	advertiseURL := cfg.AdvertiseURL
	if advertiseURL == "" {
		advertiseURL = fmt.Sprintf("http://localhost:%s", cfg.ServerPort)
	}
	go resolver.Announce(ctx, serviceName, advertiseURL, cfg.HeartbeatInterval)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: routes,
	}

	go func() {
		log.Printf("Trip server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Trip server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down trip server...")
	cancel()
	server.Shutdown(context.Background())
}
