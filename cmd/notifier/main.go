package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tripbound/internal/config"
	"tripbound/internal/events"
	"tripbound/internal/notifier"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emailService, err := notifier.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	redisClient := events.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	consumer := events.NewConsumer(redisClient, cfg.EventStream, cfg.ConsumerGroup, emailService.SendInviteEmail)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down notifier...")
		cancel()
	}()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Notifier failed: %v", err)
	}
}
