package service

import (
	"errors"
	"fmt"
	"strings"

	"tripbound/internal/models"
	"tripbound/internal/repository"
	"tripbound/internal/validation"
)

var ErrLinkNotFound = errors.New("link not found")

// LinkService manages URLs attached to trips
type LinkService struct {
	tripService *TripService
	linkRepo    *repository.LinkRepository
}

// NewLinkService creates a new link service
func NewLinkService(tripService *TripService, linkRepo *repository.LinkRepository) *LinkService {
	return &LinkService{
		tripService: tripService,
		linkRepo:    linkRepo,
	}
}

// CreateLink attaches a URL to a trip. Any authenticated caller who can
// resolve the trip may create.
func (s *LinkService) CreateLink(tripID, callerEmail, title, url string) (*models.Link, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return nil, err
	}

	if title == "" {
		return nil, validation.FieldError{Field: "title", Message: "title is required"}
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, validation.FieldError{Field: "url", Message: "url must start with http:// or https://"}
	}

	link, err := s.linkRepo.CreateLink(trip.ID, title, url, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

// ListLinks retrieves a trip's links
func (s *LinkService) ListLinks(tripID string) ([]models.Link, error) {
	if _, err := s.tripService.GetTripOrFail(tripID); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.ListTripLinks(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

// UpdateLink updates a link; trip owner or creator only
func (s *LinkService) UpdateLink(tripID string, linkID int64, callerEmail, title, url string) (*models.Link, error) {
	trip, link, err := s.loadTripLink(tripID, linkID)
	if err != nil {
		return nil, err
	}
	if err := s.tripService.RequireOwnerOrResourceOwner(trip, callerEmail, link.OwnerEmail, ActionUpdate); err != nil {
		return nil, err
	}

	if title == "" {
		return nil, validation.FieldError{Field: "title", Message: "title is required"}
	}

	if err := s.linkRepo.UpdateLink(linkID, title, url); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}

	link.Title = title
	link.URL = url
	return link, nil
}

// DeleteLink removes a link; trip owner or creator only
func (s *LinkService) DeleteLink(tripID string, linkID int64, callerEmail string) error {
	trip, link, err := s.loadTripLink(tripID, linkID)
	if err != nil {
		return err
	}
	if err := s.tripService.RequireOwnerOrResourceOwner(trip, callerEmail, link.OwnerEmail, ActionDelete); err != nil {
		return err
	}

	if err := s.linkRepo.DeleteLink(linkID); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

// DeleteAllLinks removes every link of a trip; trip owner only
func (s *LinkService) DeleteAllLinks(tripID, callerEmail string) error {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return err
	}
	if err := s.tripService.RequireOwner(trip, callerEmail, ActionDelete); err != nil {
		return err
	}

	if err := s.linkRepo.DeleteTripLinks(tripID); err != nil {
		return fmt.Errorf("failed to delete links: %w", err)
	}
	return nil
}

func (s *LinkService) loadTripLink(tripID string, linkID int64) (*models.Trip, *models.Link, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return nil, nil, err
	}

	link, err := s.linkRepo.GetLinkByID(linkID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get link: %w", err)
	}
	if link == nil || link.TripID != trip.ID {
		return nil, nil, ErrLinkNotFound
	}
	return trip, link, nil
}
