package models

import "time"

// Link is a shared URL attached to a trip (booking confirmations,
// itineraries, etc).
type Link struct {
	ID         int64
	TripID     string
	Title      string
	URL        string
	OwnerEmail string
	CreatedAt  time.Time
}
