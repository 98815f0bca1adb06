package service

import (
	"context"
	"fmt"
	"log"

	"tripbound/internal/directory"
	"tripbound/internal/events"
	"tripbound/internal/models"
	"tripbound/internal/repository"
	"tripbound/internal/validation"
)

// InviteService creates and revokes single-use trip invites and hands
// invite-created events to the notification channel.
type InviteService struct {
	tripService *TripService
	inviteRepo  *repository.InviteRepository
	directory   directory.Directory
	publisher   events.Publisher
}

// NewInviteService creates a new invite service
func NewInviteService(tripService *TripService, inviteRepo *repository.InviteRepository, dir directory.Directory, publisher events.Publisher) *InviteService {
	return &InviteService{
		tripService: tripService,
		inviteRepo:  inviteRepo,
		directory:   dir,
		publisher:   publisher,
	}
}

// CreateInvite issues a pending invite for the invitee and returns the
// invitee's email as confirmation.
//
// Nothing is persisted until the invitee identity has been resolved, so
// any failure up to that point has no side effects. A publish failure
// after the invite is durable leaves a valid invite with no notification
// sent; that is deliberate best-effort delivery, logged and never
// surfaced to the caller.
func (s *InviteService) CreateInvite(ctx context.Context, tripID, callerEmail, inviteeEmail string) (string, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return "", err
	}
	if err := s.tripService.RequireOwner(trip, callerEmail, ActionUpdate); err != nil {
		return "", err
	}

	if err := validation.ValidateEmail(inviteeEmail); err != nil {
		return "", err
	}

	invitee, err := s.directory.LookupByEmail(ctx, inviteeEmail)
	if err != nil {
		return "", fmt.Errorf("failed to resolve invitee: %w", err)
	}

	invite, err := s.inviteRepo.CreateInvite(tripID, invitee.ID, invitee.Name, invitee.Email)
	if err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}

	event := events.InviteCreated{
		Code:         invite.Code,
		TripID:       trip.ID,
		Destination:  trip.Destination,
		OwnerName:    trip.OwnerName,
		OwnerEmail:   trip.OwnerEmail,
		StartsAt:     trip.FormattedStartsAt(),
		EndsAt:       trip.FormattedEndsAt(),
		InviteeName:  invitee.Name,
		InviteeEmail: invitee.Email,
	}
	if err := s.publisher.PublishInviteCreated(ctx, event); err != nil {
		log.Printf("Failed to publish invite-created event for trip %s: %v", trip.ID, err)
	}

	return invitee.Email, nil
}

// RevokeInvite invalidates an outstanding invite; owner only. Revoking
// an already-consumed or unknown code is a no-op.
func (s *InviteService) RevokeInvite(tripID, callerEmail, code string) error {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return err
	}
	if err := s.tripService.RequireOwner(trip, callerEmail, ActionDelete); err != nil {
		return err
	}

	if _, err := s.inviteRepo.Invalidate(code, trip.ID); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	return nil
}

// ListInvites retrieves all invites of a trip; owner only
func (s *InviteService) ListInvites(tripID, callerEmail string) ([]models.Invite, error) {
	trip, err := s.tripService.GetTripOrFail(tripID)
	if err != nil {
		return nil, err
	}
	if err := s.tripService.RequireOwner(trip, callerEmail, ActionRead); err != nil {
		return nil, err
	}

	invites, err := s.inviteRepo.ListTripInvites(tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}
