package repositories

import (
	"context"

	"studydeck/internal/domain/models"
)

// DocumentRepository defines persistence for document metadata rows.
// All methods are scoped by userID.
type DocumentRepository interface {
	// Create inserts a new document row
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id, userID string) (*models.Document, error)

	// Update persists folder_id, name and updated_at
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes one document row; reports whether a row was deleted
	Delete(ctx context.Context, id, userID string) (bool, error)

	// ListByFolder lists documents filed in folderID (nil = unfiled/root)
	ListByFolder(ctx context.Context, userID string, folderID *string) ([]models.Document, error)

	// DeleteByFolderIDs removes every document filed in any of the given
	// folders and returns the storage keys of the removed blobs
	DeleteByFolderIDs(ctx context.Context, userID string, folderIDs []string) ([]string, error)

	// GetAllByUser retrieves all document metadata for a user (flat list)
	GetAllByUser(ctx context.Context, userID string) ([]models.Document, error)
}
