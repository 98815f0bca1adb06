package service

import (
	"errors"
	"fmt"
	"time"

	"tripbound/internal/models"
	"tripbound/internal/repository"
	"tripbound/internal/validation"
)

var ErrActivityNotFound = errors.New("activity not found")

// ActivityService manages trip itinerary items
type ActivityService struct {
	tripService  *TripService
	activityRepo *repository.ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(tripService *TripService, activityRepo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{
		tripService:  tripService,
		activityRepo: activityRepo,
	}
}

// CreateActivity adds an itinerary item. Any authenticated caller who
// can resolve the trip may create; the creator is stamped for later
// update/delete checks.
func (s *ActivityService) CreateActivity(tripID, callerEmail, title string, occursAt time.Time) (*models.Activity, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		return nil, validation.FieldError{Field: "title", Message: "title is required"}
	}
	if occursAt.IsZero() {
		return nil, validation.FieldError{Field: "occursAt", Message: "activity date is required"}
	}

	activity, err := s.activityRepo.CreateActivity(trip.ID, title, occursAt, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

// ListActivities retrieves a trip's itinerary
func (s *ActivityService) ListActivities(tripID string) ([]models.Activity, error) {
	if _, err := s.tripService.GetTripOrFail(tripID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListTripActivities(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// UpdateActivity updates an item; trip owner or creator only
func (s *ActivityService) UpdateActivity(tripID string, activityID int64, callerEmail, title string, occursAt time.Time) (*models.Activity, error) {
	trip, activity, err := s.loadTripActivity(tripID, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.tripService.RequireOwnerOrResourceOwner(trip, callerEmail, activity.OwnerEmail, ActionUpdate); err != nil {
		return nil, err
	}

	if title == "" {
		return nil, validation.FieldError{Field: "title", Message: "title is required"}
	}

	if err := s.activityRepo.UpdateActivity(activityID, title, occursAt); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	activity.Title = title
	activity.OccursAt = occursAt
	return activity, nil
}

// DeleteActivity removes an item; trip owner or creator only
func (s *ActivityService) DeleteActivity(tripID string, activityID int64, callerEmail string) error {
	trip, activity, err := s.loadTripActivity(tripID, activityID)
	if err != nil {
		return err
	}
	if err := s.tripService.RequireOwnerOrResourceOwner(trip, callerEmail, activity.OwnerEmail, ActionDelete); err != nil {
		return err
	}

	if err := s.activityRepo.DeleteActivity(activityID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// DeleteAllActivities removes a trip's whole itinerary; trip owner only
func (s *ActivityService) DeleteAllActivities(tripID, callerEmail string) error {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return err
	}
	if err := s.tripService.RequireOwner(trip, callerEmail, ActionDelete); err != nil {
		return err
	}

	if err := s.activityRepo.DeleteTripActivities(tripID); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	return nil
}

func (s *ActivityService) loadTripActivity(tripID string, activityID int64) (*models.Trip, *models.Activity, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return nil, nil, err
	}

	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil || activity.TripID != trip.ID {
		return nil, nil, ErrActivityNotFound
	}
	return trip, activity, nil
}
