package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"studydeck/internal/config"
	"studydeck/internal/domain"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/repositories"
	"studydeck/internal/domain/services"
)

type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	blobs      services.BlobStore
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	blobs services.BlobStore,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// CreateDocument uploads the content and inserts a metadata row. The blob is
// written first under a fresh key; if the row insert fails the blob is
// removed again so storage never accumulates unreferenced uploads.
func (s *documentService) CreateDocument(ctx context.Context, userID string, req *services.CreateDocumentRequest) (*models.Document, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateDocumentName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folderID := req.FolderID
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	key := fmt.Sprintf("documents/%s/%s", userID, uuid.NewString())
	if err := s.blobs.Upload(ctx, key, req.ContentType, req.Content, req.SizeBytes); err != nil {
		return nil, fmt.Errorf("%w: upload document: %v", domain.ErrStorage, err)
	}

	now := time.Now()
	doc := &models.Document{
		UserID:      userID,
		FolderID:    folderID,
		Name:        name,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to delete blob after insert failure", "key", key, "error", delErr)
		}
		return nil, err
	}

	doc.URL = s.blobs.FileURL(key)

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"folder_id", doc.FolderID,
		"size_bytes", doc.SizeBytes,
	)

	return doc, nil
}

// GetDocument retrieves a document with its blob URL
func (s *documentService) GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}
	doc.URL = s.blobs.FileURL(doc.StorageKey)
	return doc, nil
}

// UpdateDocument renames and/or refiles a document. FolderID is tri-state:
// absent keeps the current folder, null unfiles, a value refiles.
func (s *documentService) UpdateDocument(ctx context.Context, userID, documentID string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if req.Name == nil && !req.FolderID.Present {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateDocumentName(name); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		doc.Name = name
	}

	if req.FolderID.Present {
		if req.FolderID.Value != nil && *req.FolderID.Value != "" {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value, userID); err != nil {
				return nil, fmt.Errorf("folder: %w", err)
			}
			doc.FolderID = req.FolderID.Value
		} else {
			doc.FolderID = nil
		}
	}

	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	doc.URL = s.blobs.FileURL(doc.StorageKey)

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"folder_id", doc.FolderID,
	)

	return doc, nil
}

// DeleteDocument removes the row and then the blob (best effort)
func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID string) (bool, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID, userID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	deleted, err := s.docRepo.Delete(ctx, documentID, userID)
	if err != nil {
		return false, err
	}

	if deleted {
		if err := s.blobs.Delete(ctx, doc.StorageKey); err != nil {
			s.logger.Warn("failed to delete blob", "key", doc.StorageKey, "error", err)
		}
		s.logger.Info("document deleted", "id", documentID, "name", doc.Name)
	}

	return deleted, nil
}

// ListDocuments lists documents filed in folderID (nil = unfiled)
func (s *documentService) ListDocuments(ctx context.Context, userID string, folderID *string) ([]models.Document, error) {
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	docs, err := s.docRepo.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].URL = s.blobs.FileURL(docs[i].StorageKey)
	}
	if docs == nil {
		docs = []models.Document{}
	}

	return docs, nil
}

// validateDocumentName enforces the document naming rules on an already-trimmed name
func validateDocumentName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("document name cannot be empty"),
		validation.RuneLength(1, config.MaxDocumentNameLength),
		validation.Match(folderNamePattern).Error("document name cannot contain slashes"),
	)
}
