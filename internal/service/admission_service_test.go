package service

import (
	"errors"
	"sync"
	"testing"

	"tripbound/internal/models"
	"tripbound/internal/repository"
)

type admissionFixture struct {
	admission    *AdmissionService
	participants *ParticipantService
	trip         *models.Trip
	invite       *models.Invite
}

func newAdmissionFixture(t *testing.T) *admissionFixture {
	t.Helper()

	db := newTestDB(t)
	tripService := NewTripService(repository.NewTripRepository(db))
	inviteRepo := repository.NewInviteRepository(db)

	startsAt, endsAt := testDates()
	trip, err := tripService.CreateTrip("u1", "Ann", "ann@example.com", "Lisbon", startsAt, endsAt)
	if err != nil {
		t.Fatalf("CreateTrip() error = %v", err)
	}

	invite, err := inviteRepo.CreateInvite(trip.ID, "u2", "Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	return &admissionFixture{
		admission:    NewAdmissionService(db, tripService, inviteRepo),
		participants: NewParticipantService(tripService, repository.NewParticipantRepository(db)),
		trip:         trip,
		invite:       invite,
	}
}

func TestRedeem(t *testing.T) {
	f := newAdmissionFixture(t)

	participant, summary, err := f.admission.Redeem(f.invite.Code, "u2", "bob@example.com")
	if err != nil {
		t.Fatalf("Redeem() error = %v", err)
	}

	// The participant is keyed by the canonical user id and named from
	// the invite snapshot
	if participant.ID != "u2" {
		t.Errorf("participant ID = %q, want %q", participant.ID, "u2")
	}
	if participant.Name != "Bob" {
		t.Errorf("participant Name = %q, want %q", participant.Name, "Bob")
	}
	if participant.Email != "bob@example.com" {
		t.Errorf("participant Email = %q, want %q", participant.Email, "bob@example.com")
	}
	if participant.TripID != f.trip.ID {
		t.Errorf("participant TripID = %q, want %q", participant.TripID, f.trip.ID)
	}

	if summary.ID != f.trip.ID || summary.Destination != "Lisbon" || summary.OwnerName != "Ann" {
		t.Errorf("summary = %+v", summary)
	}

	listed, err := f.participants.ListParticipants(f.trip.ID)
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("participants = %d, want 1", len(listed))
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	f := newAdmissionFixture(t)

	if _, _, err := f.admission.Redeem("no-such-code", "u2", "bob@example.com"); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("error = %v, want ErrInvalidInvite", err)
	}
}

func TestRedeemIdentityMismatch(t *testing.T) {
	f := newAdmissionFixture(t)

	tests := []struct {
		name   string
		userID string
		email  string
	}{
		{"wrong email", "u2", "eve@example.com"},
		{"wrong user id", "u3", "bob@example.com"},
		{"wrong both", "u3", "eve@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.admission.Redeem(f.invite.Code, tt.userID, tt.email)
			if !errors.Is(err, ErrInvalidInvite) {
				t.Errorf("error = %v, want ErrInvalidInvite", err)
			}
		})
	}

	// A mismatch must not consume the invite
	if _, _, err := f.admission.Redeem(f.invite.Code, "u2", "bob@example.com"); err != nil {
		t.Errorf("Redeem() by rightful invitee error = %v", err)
	}
}

func TestRedeemTwice(t *testing.T) {
	f := newAdmissionFixture(t)

	if _, _, err := f.admission.Redeem(f.invite.Code, "u2", "bob@example.com"); err != nil {
		t.Fatalf("first Redeem() error = %v", err)
	}
	if _, _, err := f.admission.Redeem(f.invite.Code, "u2", "bob@example.com"); !errors.Is(err, ErrInvalidInvite) {
		t.Errorf("second Redeem() error = %v, want ErrInvalidInvite", err)
	}
}

func TestRedeemConcurrent(t *testing.T) {
	f := newAdmissionFixture(t)

	const attempts = 8
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = f.admission.Redeem(f.invite.Code, "u2", "bob@example.com")
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, ErrInvalidInvite) {
			t.Errorf("attempt %d: error = %v, want ErrInvalidInvite", i, err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}

	listed, err := f.participants.ListParticipants(f.trip.ID)
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("participants = %d, want 1", len(listed))
	}
}
