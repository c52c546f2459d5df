package models

import (
	"time"
)

// Folder is one node of a user's folder tree. Path is the denormalized
// materialized path ("/Biology/Exam1"); it is stored, kept in sync with
// parent_id on every mutation, and always recomputable by walking
// parent_id pointers to the root.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"-" db:"user_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether the folder sits at root level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
