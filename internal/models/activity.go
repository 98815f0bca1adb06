package models

import "time"

// Activity is a scheduled item on a trip's itinerary. OwnerEmail is the
// creator, stamped at creation, and drives update/delete authorization.
type Activity struct {
	ID         int64
	TripID     string
	Title      string
	OccursAt   time.Time
	OwnerEmail string
	CreatedAt  time.Time
}
