package events

// InviteCreated is published once per successfully created invite. All
// fields are snapshots taken at creation time; later mutations of the
// trip or user records do not flow into an already-published event.
type InviteCreated struct {
	Code         string `json:"code"`
	TripID       string `json:"tripId"`
	Destination  string `json:"destination"`
	OwnerName    string `json:"ownerName"`
	OwnerEmail   string `json:"ownerEmail"`
	StartsAt     string `json:"startsAt"`
	EndsAt       string `json:"endsAt"`
	InviteeName  string `json:"inviteeName"`
	InviteeEmail string `json:"inviteeEmail"`
}
