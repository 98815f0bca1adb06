package service

import (
	"errors"
	"fmt"

	"tripbound/internal/database"
	"tripbound/internal/models"
	"tripbound/internal/repository"
)

// ErrInvalidInvite covers every way a redemption can be refused short of
// the trip being gone: unknown code, already redeemed, revoked, or an
// identity mismatch. The cases are deliberately indistinguishable to the
// caller so a probe cannot learn whose invite a code belongs to.
var ErrInvalidInvite = errors.New("invalid invite")

// AdmissionService redeems invites and admits participants.
type AdmissionService struct {
	db          *database.DB
	tripService *TripService
	inviteRepo  *repository.InviteRepository
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(db *database.DB, tripService *TripService, inviteRepo *repository.InviteRepository) *AdmissionService {
	return &AdmissionService{
		db:          db,
		tripService: tripService,
		inviteRepo:  inviteRepo,
	}
}

// Redeem consumes a valid invite and creates a Participant bound to the
// trip, keyed by the caller's canonical user id. At most one Redeem per
// code can ever succeed: the invite flip and the participant insert
// happen in one transaction, the flip is a conditional update checked by
// affected-row count, and UNIQUE(trip_id, email) on participants backs
// the invariant up even if the invite row were lost.
func (s *AdmissionService) Redeem(code, callerUserID, callerEmail string) (*models.Participant, models.TripSummary, error) {
	var summary models.TripSummary

	invite, err := s.inviteRepo.GetValidInviteByCode(code)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to look up invite: %w", err)
	}
	if invite == nil {
		return nil, summary, ErrInvalidInvite
	}

	// The invite is bound to the identity snapshotted at issuance; the
	// caller's asserted identity must match it
	if invite.InviteeEmail != callerEmail || invite.InviteeUserID != callerUserID {
		return nil, summary, ErrInvalidInvite
	}

	trip, err := s.tripService.GetTripOrFail(invite.TripID)
	if err != nil {
		return nil, summary, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, summary, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	claimed, err := repository.NewInviteRepository(tx).Invalidate(code, invite.TripID)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to claim invite: %w", err)
	}
	if !claimed {
		// A concurrent redemption won the conditional update
		return nil, summary, ErrInvalidInvite
	}

	// Participant name comes from the invite snapshot, never a
	// placeholder
	participant, err := repository.NewParticipantRepository(tx).CreateParticipant(
		invite.InviteeUserID, trip.ID, invite.InviteeName, invite.InviteeEmail,
	)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to create participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, summary, fmt.Errorf("failed to commit redemption: %w", err)
	}

	return participant, trip.Summary(), nil
}
