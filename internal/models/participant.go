package models

import "time"

// Participant ties a global user identity to a trip. The ID is the
// invitee's canonical user id, not an independently generated key, so a
// user participates in a trip at most once.
type Participant struct {
	ID        string
	TripID    string
	Name      string
	Email     string
	CreatedAt time.Time
}
