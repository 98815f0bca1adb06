package service

import (
	"errors"
	"fmt"
	"time"

	"tripbound/internal/models"
	"tripbound/internal/repository"
	"tripbound/internal/validation"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrInvalidDate  = errors.New("invalid date range")
	ErrAccessDenied = errors.New("access denied")
)

// Action names what the caller is trying to do with a resource; denial
// messages phrase the verb accordingly.
type Action int

const (
	ActionRead Action = iota
	ActionUpdate
	ActionDelete
)

var actionVerbs = map[Action]string{
	ActionRead:   "view",
	ActionUpdate: "update",
	ActionDelete: "delete",
}

func (a Action) verb() string {
	if v, ok := actionVerbs[a]; ok {
		return v
	}
	return "access"
}

// TripService owns trip records and the authorization predicate every
// trip sub-resource depends on.
type TripService struct {
	tripRepo *repository.TripRepository
}

// NewTripService creates a new trip service
func NewTripService(tripRepo *repository.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTrip creates a trip owned by the caller. The owner identity is
// captured as a snapshot and never re-resolved. A trip whose end date
// precedes its start date is rejected; equal dates are a one-day trip
// and accepted.
func (s *TripService) CreateTrip(ownerID, ownerName, ownerEmail, destination string, startsAt, endsAt time.Time) (*models.Trip, error) {
	if err := validation.ValidateDestination(destination); err != nil {
		return nil, err
	}
	if startsAt.IsZero() || endsAt.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidDate)
	}
	if endsAt.Before(startsAt) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidDate)
	}

	trip, err := s.tripRepo.CreateTrip(destination, ownerID, ownerName, ownerEmail, startsAt, endsAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

// GetTripOrFail retrieves a trip or fails with ErrTripNotFound. Every
// sub-resource operation goes through this first: a stale trip reference
// fails the lookup instead of crashing downstream.
func (s *TripService) GetTripOrFail(tripID string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// RequireOwner permits only the trip owner; used for trip-wide
// destructive operations.
func (s *TripService) RequireOwner(trip *models.Trip, callerEmail string, action Action) error {
	if callerEmail == trip.OwnerEmail {
		return nil
	}
	return fmt.Errorf("%w: only the trip owner may %s this", ErrAccessDenied, action.verb())
}

// RequireOwnerOrResourceOwner permits the trip owner or the creator of
// the resource being acted on.
func (s *TripService) RequireOwnerOrResourceOwner(trip *models.Trip, callerEmail, resourceOwnerEmail string, action Action) error {
	if callerEmail == trip.OwnerEmail || callerEmail == resourceOwnerEmail {
		return nil
	}
	return fmt.Errorf("%w: only the trip owner or the creator may %s this", ErrAccessDenied, action.verb())
}

// UpdateTrip updates destination and dates; owner only
func (s *TripService) UpdateTrip(tripID, callerEmail, destination string, startsAt, endsAt time.Time) (*models.Trip, error) {
	trip, err := s.GetTripOrFail(tripID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireOwner(trip, callerEmail, ActionUpdate); err != nil {
		return nil, err
	}

	if err := validation.ValidateDestination(destination); err != nil {
		return nil, err
	}
	if endsAt.Before(startsAt) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidDate)
	}

	if err := s.tripRepo.UpdateTrip(tripID, destination, startsAt, endsAt); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	trip.Destination = destination
	trip.StartsAt = startsAt
	trip.EndsAt = endsAt
	return trip, nil
}

// ConfirmTrip marks the trip confirmed; owner only
func (s *TripService) ConfirmTrip(tripID, callerEmail string) error {
	trip, err := s.GetTripOrFail(tripID)
	if err != nil {
		return err
	}
	if err := s.RequireOwner(trip, callerEmail, ActionUpdate); err != nil {
		return err
	}

	if err := s.tripRepo.SetConfirmed(tripID, true); err != nil {
		return fmt.Errorf("failed to confirm trip: %w", err)
	}
	return nil
}
