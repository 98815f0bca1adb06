package repository

import (
	"database/sql"
	"errors"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/models"
)

// ActivityRepository persists trip activities
type ActivityRepository struct {
	db database.DBTX
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db database.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateActivity creates an itinerary item stamped with its creator
func (r *ActivityRepository) CreateActivity(tripID, title string, occursAt time.Time, ownerEmail string) (*models.Activity, error) {
	now := time.Now()

	query := `INSERT INTO activities (trip_id, title, occurs_at, owner_email, created_at) VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, tripID, title, occursAt, ownerEmail, now)
	if err != nil {
		return nil, err
	}

	return &models.Activity{
		ID:         id,
		TripID:     tripID,
		Title:      title,
		OccursAt:   occursAt,
		OwnerEmail: ownerEmail,
		CreatedAt:  now,
	}, nil
}

// GetActivityByID retrieves an activity, returning nil when absent
func (r *ActivityRepository) GetActivityByID(id int64) (*models.Activity, error) {
	query := `SELECT id, trip_id, title, occurs_at, owner_email, created_at FROM activities WHERE id = ?`

	var a models.Activity
	err := r.db.QueryRow(query, id).Scan(&a.ID, &a.TripID, &a.Title, &a.OccursAt, &a.OwnerEmail, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListTripActivities retrieves all activities of a trip in schedule order
func (r *ActivityRepository) ListTripActivities(tripID string) ([]models.Activity, error) {
	query := `SELECT id, trip_id, title, occurs_at, owner_email, created_at FROM activities WHERE trip_id = ? ORDER BY occurs_at`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.TripID, &a.Title, &a.OccursAt, &a.OwnerEmail, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// UpdateActivity updates title and schedule of an activity
func (r *ActivityRepository) UpdateActivity(id int64, title string, occursAt time.Time) error {
	query := `UPDATE activities SET title = ?, occurs_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, title, occursAt, id)
	return err
}

// DeleteActivity removes a single activity
func (r *ActivityRepository) DeleteActivity(id int64) error {
	query := `DELETE FROM activities WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

// DeleteTripActivities removes every activity of a trip
func (r *ActivityRepository) DeleteTripActivities(tripID string) error {
	query := `DELETE FROM activities WHERE trip_id = ?`
	_, err := r.db.Exec(query, tripID)
	return err
}
