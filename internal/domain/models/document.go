package models

import (
	"time"
)

// Document is an uploaded file's metadata row. The content itself lives in
// the blob store under StorageKey; FolderID is nullable (NULL = unfiled).
type Document struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"-" db:"user_id"`
	FolderID    *string   `json:"folder_id" db:"folder_id"`
	Name        string    `json:"name" db:"name"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	StorageKey  string    `json:"-" db:"storage_key"`
	URL         string    `json:"url,omitempty"` // Computed from StorageKey, not stored
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
