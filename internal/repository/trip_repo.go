package repository

import (
	"database/sql"
	"errors"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/models"
	"tripbound/internal/security"
)

// TripRepository persists trip records
type TripRepository struct {
	db database.DBTX
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db database.DBTX) *TripRepository {
	return &TripRepository{db: db}
}

// CreateTrip creates a trip owned by the given identity. Owner fields
// are denormalized and never updated afterwards.
func (r *TripRepository) CreateTrip(destination, ownerID, ownerName, ownerEmail string, startsAt, endsAt time.Time) (*models.Trip, error) {
	id := security.GenerateID()
	now := time.Now()

	query := `
		INSERT INTO trips (id, destination, owner_id, owner_name, owner_email, starts_at, ends_at, is_confirmed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, id, destination, ownerID, ownerName, ownerEmail, startsAt, endsAt, true, now)
	if err != nil {
		return nil, err
	}

	return &models.Trip{
		ID:          id,
		Destination: destination,
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		OwnerEmail:  ownerEmail,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		IsConfirmed: true,
		CreatedAt:   now,
	}, nil
}

// GetTripByID retrieves a trip by id, returning nil when absent
func (r *TripRepository) GetTripByID(id string) (*models.Trip, error) {
	query := `
		SELECT id, destination, owner_id, owner_name, owner_email, starts_at, ends_at, is_confirmed, created_at
		FROM trips WHERE id = ?
	`

	var trip models.Trip
	err := r.db.QueryRow(query, id).Scan(
		&trip.ID, &trip.Destination, &trip.OwnerID, &trip.OwnerName, &trip.OwnerEmail,
		&trip.StartsAt, &trip.EndsAt, &trip.IsConfirmed, &trip.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// UpdateTrip updates the mutable trip fields (destination and dates)
func (r *TripRepository) UpdateTrip(id, destination string, startsAt, endsAt time.Time) error {
	query := `UPDATE trips SET destination = ?, starts_at = ?, ends_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, destination, startsAt, endsAt, id)
	return err
}

// SetConfirmed flips the confirmation flag
func (r *TripRepository) SetConfirmed(id string, confirmed bool) error {
	query := `UPDATE trips SET is_confirmed = ? WHERE id = ?`
	_, err := r.db.Exec(query, confirmed, id)
	return err
}

// DeleteTrip removes a trip
func (r *TripRepository) DeleteTrip(id string) error {
	query := `DELETE FROM trips WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
