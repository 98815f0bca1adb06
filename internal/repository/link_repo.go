package repository

import (
	"database/sql"
	"errors"
	"time"

	"tripbound/internal/database"
	"tripbound/internal/models"
)

// LinkRepository persists trip links
type LinkRepository struct {
	db database.DBTX
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db database.DBTX) *LinkRepository {
	return &LinkRepository{db: db}
}

// CreateLink attaches a URL to a trip stamped with its creator
func (r *LinkRepository) CreateLink(tripID, title, url, ownerEmail string) (*models.Link, error) {
	now := time.Now()

	query := `INSERT INTO links (trip_id, title, url, owner_email, created_at) VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, tripID, title, url, ownerEmail, now)
	if err != nil {
		return nil, err
	}

	return &models.Link{
		ID:         id,
		TripID:     tripID,
		Title:      title,
		URL:        url,
		OwnerEmail: ownerEmail,
		CreatedAt:  now,
	}, nil
}

// GetLinkByID retrieves a link, returning nil when absent
func (r *LinkRepository) GetLinkByID(id int64) (*models.Link, error) {
	query := `SELECT id, trip_id, title, url, owner_email, created_at FROM links WHERE id = ?`

	var l models.Link
	err := r.db.QueryRow(query, id).Scan(&l.ID, &l.TripID, &l.Title, &l.URL, &l.OwnerEmail, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListTripLinks retrieves all links of a trip
func (r *LinkRepository) ListTripLinks(tripID string) ([]models.Link, error) {
	query := `SELECT id, trip_id, title, url, owner_email, created_at FROM links WHERE trip_id = ? ORDER BY created_at`

	rows, err := r.db.Query(query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.ID, &l.TripID, &l.Title, &l.URL, &l.OwnerEmail, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// UpdateLink updates title and URL of a link
func (r *LinkRepository) UpdateLink(id int64, title, url string) error {
	query := `UPDATE links SET title = ?, url = ? WHERE id = ?`
	_, err := r.db.Exec(query, title, url, id)
	return err
}

// DeleteLink removes a single link
func (r *LinkRepository) DeleteLink(id int64) error {
	query := `DELETE FROM links WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}

// DeleteTripLinks removes every link of a trip
func (r *LinkRepository) DeleteTripLinks(tripID string) error {
	query := `DELETE FROM links WHERE trip_id = ?`
	_, err := r.db.Exec(query, tripID)
	return err
}
