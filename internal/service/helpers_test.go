package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/directory"
	"tripbound/internal/events"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func testDates() (time.Time, time.Time) {
	startsAt := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	return startsAt, startsAt.AddDate(0, 0, 4)
}

// fakeDirectory resolves emails from a fixed user set
type fakeDirectory struct {
	users map[string]directory.Identity
}

func (d *fakeDirectory) LookupByEmail(_ context.Context, email string) (*directory.Identity, error) {
	user, ok := d.users[email]
	if !ok {
		return nil, directory.ErrUserNotFound
	}
	return &user, nil
}

// recordingPublisher captures published events and can simulate a broker
// outage
type recordingPublisher struct {
	events []events.InviteCreated
	err    error
}

func (p *recordingPublisher) PublishInviteCreated(_ context.Context, event events.InviteCreated) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
