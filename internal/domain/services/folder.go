package services

import (
	"context"

	"studydeck/internal/domain/models"
)

// FolderService handles folder hierarchy business logic. Every operation is
// scoped to one owner; folders of other users are reported as not found.
type FolderService interface {
	// CreateFolder creates a new folder under an existing parent (nil = root)
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a single folder
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// RenameFolder changes a folder's name and rewrites descendant paths
	RenameFolder(ctx context.Context, userID, folderID, newName string) (*models.Folder, error)

	// MoveFolder reparents a folder (nil = root) and rewrites descendant
	// paths. Moving a folder into itself or its own subtree is rejected.
	MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) (*models.Folder, error)

	// DeleteFolder removes a folder, its whole subtree and every document
	// filed anywhere below it. Reports whether anything was deleted.
	DeleteFolder(ctx context.Context, userID, folderID string) (bool, error)

	// GetPath returns the ancestor chain from root to the folder, inclusive.
	// An empty chain means the folder does not exist.
	GetPath(ctx context.Context, userID, folderID string) ([]models.Folder, error)

	// ListChildren lists immediate child folders and documents of parentID
	// (nil = root level), paginated over the folders
	ListChildren(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) (*FolderContents, error)

	// ListDescendants lists the folder's entire subtree as a flat list
	ListDescendants(ctx context.Context, userID, folderID string) ([]models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null/absent for root
}

// FolderContents represents a folder listing with its children
type FolderContents struct {
	Folder    *models.Folder    `json:"folder,omitempty"` // null for root
	Folders   []models.Folder   `json:"folders"`
	Documents []models.Document `json:"documents"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}
