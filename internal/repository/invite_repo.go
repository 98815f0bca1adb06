package repository

import (
	"database/sql"
	"errors"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/models"
	"tripbound/internal/security"
)

// InviteRepository persists single-use trip invites
type InviteRepository struct {
	db database.DBTX
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db database.DBTX) *InviteRepository {
	return &InviteRepository{db: db}
}

// CreateInvite creates a pending invite carrying a snapshot of the
// resolved invitee identity.
func (r *InviteRepository) CreateInvite(tripID, inviteeUserID, inviteeName, inviteeEmail string) (*models.Invite, error) {
	code, err := security.GenerateInviteCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()

	query := `
		INSERT INTO invites (code, trip_id, invitee_user_id, invitee_name, invitee_email, is_valid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, code, tripID, inviteeUserID, inviteeName, inviteeEmail, true, now)
	if err != nil {
		return nil, err
	}

	return &models.Invite{
		ID:            id,
		Code:          code,
		TripID:        tripID,
		InviteeUserID: inviteeUserID,
		InviteeName:   inviteeName,
		InviteeEmail:  inviteeEmail,
		IsValid:       true,
		CreatedAt:     now,
	}, nil
}

// GetValidInviteByCode retrieves a still-valid invite by code, returning
// nil when no such invite exists. Redeemed and revoked invites are
// indistinguishable from ones that never existed.
func (r *InviteRepository) GetValidInviteByCode(code string) (*models.Invite, error) {
	query := `
		SELECT id, code, trip_id, invitee_user_id, invitee_name, invitee_email, is_valid, created_at
		FROM invites WHERE code = ? AND is_valid = ?
	`

	var invite models.Invite
	err := r.db.QueryRow(query, code, true).Scan(
		&invite.ID, &invite.Code, &invite.TripID, &invite.InviteeUserID,
		&invite.InviteeName, &invite.InviteeEmail, &invite.IsValid, &invite.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// Invalidate flips is_valid to false only if it is currently true and
// belongs to the given trip, and reports whether this call won the
// flip. Concurrent redeemers race on this conditional update; exactly
// one sees claimed == true. The trip scope keeps a code learned from
// one trip from touching another trip's invites.
func (r *InviteRepository) Invalidate(code, tripID string) (bool, error) {
	query := `UPDATE invites SET is_valid = ? WHERE code = ? AND trip_id = ? AND is_valid = ?`
	result, err := r.db.Exec(query, false, code, tripID, true)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ListTripInvites retrieves all invites for a trip, newest first
func (r *InviteRepository) ListTripInvites(tripID string) ([]models.Invite, error) {
	query := `
		SELECT id, code, trip_id, invitee_user_id, invitee_name, invitee_email, is_valid, created_at
		FROM invites WHERE trip_id = ? ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		var invite models.Invite
		err := rows.Scan(
			&invite.ID, &invite.Code, &invite.TripID, &invite.InviteeUserID,
			&invite.InviteeName, &invite.InviteeEmail, &invite.IsValid, &invite.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}
