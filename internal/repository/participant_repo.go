package repository

import (
	"database/sql"
	"errors"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/models"
)

// ParticipantRepository persists trip participants
type ParticipantRepository struct {
	db database.DBTX
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db database.DBTX) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// CreateParticipant records a user as a trip participant. The id is the
// user's canonical id; the UNIQUE(trip_id, email) constraint rejects a
// second admission of the same identity.
func (r *ParticipantRepository) CreateParticipant(userID, tripID, name, email string) (*models.Participant, error) {
	now := time.Now()

	query := `INSERT INTO participants (id, trip_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.Exec(query, userID, tripID, name, email, now); err != nil {
		return nil, err
	}

	return &models.Participant{
		ID:        userID,
		TripID:    tripID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
	}, nil
}

// GetParticipant retrieves a participant of a trip, returning nil when
// absent
func (r *ParticipantRepository) GetParticipant(tripID, userID string) (*models.Participant, error) {
	query := `SELECT id, trip_id, name, email, created_at FROM participants WHERE trip_id = ? AND id = ?`

	var p models.Participant
	err := r.db.QueryRow(query, tripID, userID).Scan(&p.ID, &p.TripID, &p.Name, &p.Email, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListTripParticipants retrieves all participants of a trip
func (r *ParticipantRepository) ListTripParticipants(tripID string) ([]models.Participant, error) {
	query := `SELECT id, trip_id, name, email, created_at FROM participants WHERE trip_id = ? ORDER BY created_at`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// CountTripParticipants returns how many participants a trip has
func (r *ParticipantRepository) CountTripParticipants(tripID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM participants WHERE trip_id = ?`
	err := r.db.QueryRow(query, tripID).Scan(&count)
	return count, err
}
