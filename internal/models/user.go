package models

import "time"

// User is an account in the identity service.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// ValidatedIdentity is the transient result of a successful token
// validation. It exists for the duration of one request and is never
// persisted; the gateway materializes it into the trusted identity
// headers.
type ValidatedIdentity struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issuedAt"`
	Expiry   time.Time `json:"expiry"`
}
