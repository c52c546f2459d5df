package services

import (
	"context"
	"io"

	"studydeck/internal/domain/models"
	"studydeck/internal/httputil"
)

// DocumentService handles document metadata and blob lifecycle.
type DocumentService interface {
	// CreateDocument stores the uploaded content and inserts a metadata row
	CreateDocument(ctx context.Context, userID string, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document with its blob URL
	GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error)

	// UpdateDocument renames and/or refiles a document
	UpdateDocument(ctx context.Context, userID, documentID string, req *UpdateDocumentRequest) (*models.Document, error)

	// DeleteDocument removes the row and its blob; reports whether a row was deleted
	DeleteDocument(ctx context.Context, userID, documentID string) (bool, error)

	// ListDocuments lists documents filed in folderID (nil = unfiled)
	ListDocuments(ctx context.Context, userID string, folderID *string) ([]models.Document, error)
}

// CreateDocumentRequest represents an upload
type CreateDocumentRequest struct {
	Name        string
	FolderID    *string // null for unfiled
	ContentType string
	SizeBytes   int64
	Content     io.Reader
}

// UpdateDocumentRequest represents a metadata patch. FolderID is tri-state:
// absent = keep, null = unfile, value = refile.
type UpdateDocumentRequest struct {
	Name     *string                 `json:"name,omitempty"`
	FolderID httputil.OptionalString `json:"folder_id"`
}
