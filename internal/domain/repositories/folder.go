package repositories

import (
	"context"

	"studydeck/internal/domain/models"
)

// FolderRepository defines persistence for the folder tree. Every method is
// scoped by userID; a folder owned by another user behaves as nonexistent.
// Methods participate in a context transaction when one is present.
type FolderRepository interface {
	// Create inserts a new folder (ID and timestamps filled in on return)
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// GetByIDForUpdate retrieves a folder and locks its row for the
	// duration of the surrounding transaction
	GetByIDForUpdate(ctx context.Context, id, userID string) (*models.Folder, error)

	// GetByNameAndParent finds a sibling by name; returns (nil, nil) when absent
	GetByNameAndParent(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error)

	// Update persists parent_id, name, path and updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes one folder row; reports whether a row was deleted
	Delete(ctx context.Context, id, userID string) (bool, error)

	// ListChildren lists immediate children of parentID (nil = root level)
	ListChildren(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) ([]models.Folder, error)

	// ListDescendants lists every folder whose path is strictly below the given path
	ListDescendants(ctx context.Context, userID, path string) ([]models.Folder, error)

	// GetAncestors returns the chain of folders from root down to the given
	// path, inclusive, ordered root first
	GetAncestors(ctx context.Context, userID, path string) ([]models.Folder, error)

	// RewriteDescendantPaths replaces the oldPath prefix with newPath on
	// every descendant, preserving suffixes; returns rows touched
	RewriteDescendantPaths(ctx context.Context, userID, oldPath, newPath string) (int64, error)

	// DeleteDescendants removes every folder strictly below the given path;
	// returns rows deleted
	DeleteDescendants(ctx context.Context, userID, path string) (int64, error)

	// GetAllByUser retrieves all folders for a user (flat list)
	GetAllByUser(ctx context.Context, userID string) ([]models.Folder, error)
}
