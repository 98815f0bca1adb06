package service

import (
	"context"
	"errors"
	"testing"

	"tripbound/internal/directory"
	"tripbound/internal/models"
	"tripbound/internal/repository"
)

type inviteFixture struct {
	tripService *TripService
	invites     *InviteService
	admission   *AdmissionService
	publisher   *recordingPublisher
	trip        *models.Trip
}

func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()

	db := newTestDB(t)
	tripService := NewTripService(repository.NewTripRepository(db))
	inviteRepo := repository.NewInviteRepository(db)

	dir := &fakeDirectory{users: map[string]directory.Identity{
		"bob@example.com": {ID: "u2", Name: "Bob", Email: "bob@example.com"},
	}}
	publisher := &recordingPublisher{}

	startsAt, endsAt := testDates()
	trip, err := tripService.CreateTrip("u1", "Ann", "ann@example.com", "Lisbon", startsAt, endsAt)
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}

	return &inviteFixture{
		tripService: tripService,
		invites:     NewInviteService(tripService, inviteRepo, dir, publisher),
		admission:   NewAdmissionService(db, tripService, inviteRepo),
		publisher:   publisher,
		trip:        trip,
	}
}

func TestCreateInvite(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	invitedEmail, err := f.invites.CreateInvite(ctx, f.trip.ID, "ann@example.com", "bob@example.com")
	if err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}
	if invitedEmail != "bob@example.com" {
		t.Errorf("invitedEmail = %q, want %q", invitedEmail, "bob@example.com")
	}

	invites, err := f.invites.ListInvites(f.trip.ID, "ann@example.com")
	if err != nil {
		t.Fatalf("ListInvites() error = %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("invites = %d, want 1", len(invites))
	}
	invite := invites[0]
	if invite.InviteeUserID != "u2" || invite.InviteeName != "Bob" || invite.InviteeEmail != "bob@example.com" {
		t.Errorf("invitee snapshot = %+v, want Bob's resolved identity", invite)
	}
	if !invite.IsValid {
		t.Error("fresh invite should be valid")
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(f.publisher.events))
	}
	event := f.publisher.events[0]
	if event.Code != invite.Code {
		t.Errorf("event code = %q, want %q", event.Code, invite.Code)
	}
	if event.TripID != f.trip.ID || event.Destination != "Lisbon" {
		t.Errorf("event trip snapshot = %+v", event)
	}
	if event.OwnerName != "Ann" || event.OwnerEmail != "ann@example.com" {
		t.Errorf("event owner snapshot = %+v", event)
	}
	if event.StartsAt != "Mar 5, 2026" || event.EndsAt != "Mar 9, 2026" {
		t.Errorf("event dates = %q .. %q", event.StartsAt, event.EndsAt)
	}
	if event.InviteeName != "Bob" || event.InviteeEmail != "bob@example.com" {
		t.Errorf("event invitee snapshot = %+v", event)
	}
}

func TestCreateInviteDeniedForNonOwner(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.invites.CreateInvite(context.Background(), f.trip.ID, "bob@example.com", "bob@example.com")
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("error = %v, want ErrAccessDenied", err)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("published events = %d, want 0", len(f.publisher.events))
	}
}

func TestCreateInviteUnknownInvitee(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.invites.CreateInvite(context.Background(), f.trip.ID, "ann@example.com", "stranger@example.com")
	if !errors.Is(err, directory.ErrUserNotFound) {
		t.Errorf("error = %v, want directory.ErrUserNotFound", err)
	}

	invites, err := f.invites.ListInvites(f.trip.ID, "ann@example.com")
	if err != nil {
		t.Fatalf("ListInvites() error = %v", err)
	}
	if len(invites) != 0 {
		t.Errorf("invites = %d, want 0 after failed resolution", len(invites))
	}
}

func TestCreateInviteBadEmail(t *testing.T) {
	f := newInviteFixture(t)

	if _, err := f.invites.CreateInvite(context.Background(), f.trip.ID, "ann@example.com", "not-an-email"); err == nil {
		t.Error("CreateInvite() with malformed email should fail")
	}
}

func TestCreateInviteTripNotFound(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.invites.CreateInvite(context.Background(), "missing", "ann@example.com", "bob@example.com")
	if !errors.Is(err, ErrTripNotFound) {
		t.Errorf("error = %v, want ErrTripNotFound", err)
	}
}

func TestCreateInviteSurvivesPublishFailure(t *testing.T) {
	f := newInviteFixture(t)
	f.publisher.err = errors.New("broker down")

	// Notification delivery is best-effort: the invite must still be
	// created and redeemable
	if _, err := f.invites.CreateInvite(context.Background(), f.trip.ID, "ann@example.com", "bob@example.com"); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	invites, err := f.invites.ListInvites(f.trip.ID, "ann@example.com")
	if err != nil {
		t.Fatalf("ListInvites() error = %v", err)
	}
	if len(invites) != 1 {
		t.Fatalf("invites = %d, want 1", len(invites))
	}

	if _, _, err := f.admission.Redeem(invites[0].Code, "u2", "bob@example.com"); err != nil {
		t.Errorf("Redeem() after publish failure error = %v", err)
	}
}

func TestRevokeInvite(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	if _, err := f.invites.CreateInvite(ctx, f.trip.ID, "ann@example.com", "bob@example.com"); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}
	invites, err := f.invites.ListInvites(f.trip.ID, "ann@example.com")
	if err != nil {
		t.Fatalf("ListInvites() error = %v", err)
	}
	code := invites[0].Code

	if err := f.invites.RevokeInvite(f.trip.ID, "bob@example.com", code); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("non-owner revoke error = %v, want ErrAccessDenied", err)
	}

	if err := f.invites.RevokeInvite(f.trip.ID, "ann@example.com", code); err != nil {
		t.Fatalf("RevokeInvite() error = %v", err)
	}

	if _, _, err := f.admission.Redeem(code, "u2", "bob@example.com"); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("Redeem() of revoked invite error = %v, want ErrInvalidInvite", err)
	}

	// Revoking again is a no-op
	if err := f.invites.RevokeInvite(f.trip.ID, "ann@example.com", code); err != nil {
		t.Errorf("second revoke error = %v", err)
	}
}

func TestRevokeInviteScopedToTrip(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	if _, err := f.invites.CreateInvite(ctx, f.trip.ID, "ann@example.com", "bob@example.com"); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}
	invites, err := f.invites.ListInvites(f.trip.ID, "ann@example.com")
	if err != nil {
		t.Fatalf("ListInvites() error = %v", err)
	}
	code := invites[0].Code

	// Eve owns a different trip; that ownership must not let her
	// invalidate Ann's invite even knowing its code
	startsAt, endsAt := testDates()
	eveTrip, err := f.tripService.CreateTrip("u3", "Eve", "eve@example.com", "Porto", startsAt, endsAt)
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}
	if err := f.invites.RevokeInvite(eveTrip.ID, "eve@example.com", code); err != nil {
		t.Fatalf("RevokeInvite() error = %v", err)
	}

	if _, _, err := f.admission.Redeem(code, "u2", "bob@example.com"); err != nil {
		t.Errorf("Redeem() after foreign revoke attempt error = %v, want success", err)
	}
}

func TestListInvitesDeniedForNonOwner(t *testing.T) {
	f := newInviteFixture(t)

	if _, err := f.invites.ListInvites(f.trip.ID, "bob@example.com"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("error = %v, want ErrAccessDenied", err)
	}
}
