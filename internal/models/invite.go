package models

import "time"

// Invite is a single-use capability binding a trip to a resolved invitee
// identity. The invitee fields are a snapshot taken at issuance; later
// changes to the user record do not flow into an outstanding invite.
type Invite struct {
	ID            int64
	Code          string
	TripID        string
	InviteeUserID string
	InviteeName   string
	InviteeEmail  string
	IsValid       bool
	CreatedAt     time.Time
}
