package models

import "time"

// Trip is the root record of a planned journey. Owner fields are a
// denormalized snapshot captured at creation and never re-resolved.
type Trip struct {
	ID          string
	Destination string
	OwnerID     string
	OwnerName   string
	OwnerEmail  string
	StartsAt    time.Time
	EndsAt      time.Time
	IsConfirmed bool
	CreatedAt   time.Time
}

// tripDateLayout is the human-readable form used in notification emails
// and event snapshots.
const tripDateLayout = "Jan 2, 2006"

// FormattedStartsAt returns the start date in display form.
func (t *Trip) FormattedStartsAt() string {
	return t.StartsAt.Format(tripDateLayout)
}

// FormattedEndsAt returns the end date in display form.
func (t *Trip) FormattedEndsAt() string {
	return t.EndsAt.Format(tripDateLayout)
}

// TripSummary is the compact view returned alongside a confirmed
// participant.
type TripSummary struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	OwnerName   string `json:"ownerName"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
}

// Summary builds the compact view of a trip.
func (t *Trip) Summary() TripSummary {
	return TripSummary{
		ID:          t.ID,
		Destination: t.Destination,
		OwnerName:   t.OwnerName,
		StartsAt:    t.FormattedStartsAt(),
		EndsAt:      t.FormattedEndsAt(),
	}
}
