package service

import (
	"fmt"

	"tripbound/internal/models"
	"tripbound/internal/repository"
)

// ParticipantService reads trip participants. Participants are only
// ever created through invite redemption, so this service exposes no
// writes.
type ParticipantService struct {
	tripService     *TripService
	participantRepo *repository.ParticipantRepository
}

// NewParticipantService creates a new participant service
func NewParticipantService(tripService *TripService, participantRepo *repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		tripService:     tripService,
		participantRepo: participantRepo,
	}
}

// ListParticipants retrieves all participants of a trip
func (s *ParticipantService) ListParticipants(tripID string) ([]models.Participant, error) {
	if _, err := s.tripService.GetTripOrFail(tripID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListTripParticipants(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}
