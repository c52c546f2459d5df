package models

import (
	"time"
)

// User is an internal owner record. ExternalID is the verified identity
// subject (JWT sub claim); a row is auto-provisioned the first time a new
// verified identity is seen.
type User struct {
	ID         string    `json:"id" db:"id"`
	ExternalID string    `json:"-" db:"external_id"`
	Email      string    `json:"email" db:"email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
