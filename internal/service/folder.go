package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"studydeck/internal/config"
	"studydeck/internal/domain"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/repositories"
	"studydeck/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// folderNamePattern rejects path separators inside folder names
var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	docRepo    repositories.DocumentRepository
	txManager  repositories.TransactionManager
	blobs      services.BlobStore
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	docRepo repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	blobs services.BlobStore,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		txManager:  txManager,
		blobs:      blobs,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under an existing parent (nil = root).
// The new folder's path is derived from the parent's stored path; a sibling
// with the same name is a conflict.
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateFolderName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	parentID := req.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	parentPath := ""
	if parentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *parentID, userID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		parentPath = parent.Path
	}

	if err := s.checkSiblingConflict(ctx, userID, name, parentID, ""); err != nil {
		return nil, err
	}

	path := ChildPath(parentPath, name)
	if err := validatePathLength(path); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		UserID:    userID,
		ParentID:  parentID,
		Name:      name,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a single folder
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, folderID, userID)
}

// RenameFolder changes a folder's name and rewrites every descendant path by
// replacing the old own-path prefix with the new one. Validation and both
// writes share one transaction so no reader observes a half-rewritten tree.
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID, newName string) (*models.Folder, error) {
	name := strings.TrimSpace(newName)
	if err := validateFolderName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var renamed *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByIDForUpdate(txCtx, folderID, userID)
		if err != nil {
			return err
		}

		if folder.Name == name {
			renamed = folder
			return nil
		}

		if err := s.checkSiblingConflict(txCtx, userID, name, folder.ParentID, folder.ID); err != nil {
			return err
		}

		oldPath := folder.Path
		newPath := ChildPath(ParentPrefix(oldPath), name)
		if err := validatePathLength(newPath); err != nil {
			return err
		}
		folder.Name = name
		folder.Path = newPath
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}

		rewritten, err := s.folderRepo.RewriteDescendantPaths(txCtx, userID, oldPath, folder.Path)
		if err != nil {
			return err
		}

		s.logger.Info("folder renamed",
			"id", folder.ID,
			"old_path", oldPath,
			"new_path", folder.Path,
			"descendants_rewritten", rewritten,
		)

		renamed = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	return renamed, nil
}

// MoveFolder reparents a folder (nil = root). Moving a folder into itself or
// anywhere inside its own subtree would create a cycle and is rejected before
// any write. Moving to the current parent is a no-op.
func (s *folderService) MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) (*models.Folder, error) {
	if newParentID != nil && *newParentID == "" {
		newParentID = nil
	}

	if newParentID != nil && *newParentID == folderID {
		return nil, &domain.InvalidMoveError{
			Message: "cannot move a folder into itself",
			Reason:  domain.MoveReasonSelf,
		}
	}

	var moved *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByIDForUpdate(txCtx, folderID, userID)
		if err != nil {
			return err
		}

		if sameParent(folder.ParentID, newParentID) {
			moved = folder
			return nil
		}

		newParentPath := ""
		if newParentID != nil {
			parent, err := s.folderRepo.GetByID(txCtx, *newParentID, userID)
			if err != nil {
				return fmt.Errorf("destination folder: %w", err)
			}
			if IsWithin(parent.Path, folder.Path) {
				return &domain.InvalidMoveError{
					Message: "cannot move a folder into its own subtree",
					Reason:  domain.MoveReasonDescendant,
				}
			}
			newParentPath = parent.Path
		}

		if err := s.checkSiblingConflict(txCtx, userID, folder.Name, newParentID, folder.ID); err != nil {
			return err
		}

		oldPath := folder.Path
		newPath := ChildPath(newParentPath, folder.Name)
		if err := validatePathLength(newPath); err != nil {
			return err
		}
		folder.ParentID = newParentID
		folder.Path = newPath
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(txCtx, folder); err != nil {
			return err
		}

		rewritten, err := s.folderRepo.RewriteDescendantPaths(txCtx, userID, oldPath, folder.Path)
		if err != nil {
			return err
		}

		s.logger.Info("folder moved",
			"id", folder.ID,
			"old_path", oldPath,
			"new_path", folder.Path,
			"descendants_rewritten", rewritten,
		)

		moved = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// DeleteFolder removes a folder, its whole subtree and every document filed
// below it, all in one transaction. Blob cleanup happens after commit; a
// failed object delete leaves an orphan blob, never a dangling row.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) (bool, error) {
	var deleted bool
	var orphanKeys []string

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByIDForUpdate(txCtx, folderID, userID)
		if err != nil {
			return err
		}

		descendants, err := s.folderRepo.ListDescendants(txCtx, userID, folder.Path)
		if err != nil {
			return err
		}

		folderIDs := make([]string, 0, len(descendants)+1)
		folderIDs = append(folderIDs, folder.ID)
		for _, d := range descendants {
			folderIDs = append(folderIDs, d.ID)
		}

		keys, err := s.docRepo.DeleteByFolderIDs(txCtx, userID, folderIDs)
		if err != nil {
			return err
		}

		removed, err := s.folderRepo.DeleteDescendants(txCtx, userID, folder.Path)
		if err != nil {
			return err
		}

		deleted, err = s.folderRepo.Delete(txCtx, folder.ID, userID)
		if err != nil {
			return err
		}

		s.logger.Info("folder deleted",
			"id", folder.ID,
			"path", folder.Path,
			"descendant_folders", removed,
			"documents", len(keys),
		)

		orphanKeys = keys
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	// Best-effort blob cleanup outside the transaction
	for _, key := range orphanKeys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete blob", "key", key, "error", err)
		}
	}

	return deleted, nil
}

// GetPath returns the ancestor chain from root to the folder, inclusive.
// A missing folder yields an empty chain, which callers treat as not-found.
func (s *folderService) GetPath(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		if isNotFound(err) {
			return []models.Folder{}, nil
		}
		return nil, err
	}

	return s.folderRepo.GetAncestors(ctx, userID, folder.Path)
}

// ListChildren lists immediate child folders (paginated) and the documents
// filed at parentID (nil = root level)
func (s *folderService) ListChildren(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) (*services.FolderContents, error) {
	if opts == nil {
		opts = &models.ListOptions{}
	}
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *models.Folder
	if parentID != nil && *parentID != "" {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, *parentID, userID)
		if err != nil {
			return nil, err
		}
	} else {
		parentID = nil
	}

	children, err := s.folderRepo.ListChildren(ctx, userID, parentID, opts)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	docs, err := s.docRepo.ListByFolder(ctx, userID, parentID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	for i := range docs {
		docs[i].URL = s.blobs.FileURL(docs[i].StorageKey)
	}

	if children == nil {
		children = []models.Folder{}
	}
	if docs == nil {
		docs = []models.Document{}
	}

	return &services.FolderContents{
		Folder:    folder,
		Folders:   children,
		Documents: docs,
		Page:      opts.Page,
		PageSize:  opts.PageSize,
	}, nil
}

// ListDescendants lists the folder's entire subtree as a flat list
func (s *folderService) ListDescendants(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	descendants, err := s.folderRepo.ListDescendants(ctx, userID, folder.Path)
	if err != nil {
		return nil, err
	}
	if descendants == nil {
		descendants = []models.Folder{}
	}

	return descendants, nil
}

// checkSiblingConflict rejects a name collision at the target location.
// excludeID skips the folder being renamed/moved so it never conflicts with
// itself. The (user_id, parent_id, name) unique constraint is the backstop
// for races between this check and the write.
func (s *folderService) checkSiblingConflict(ctx context.Context, userID, name string, parentID *string, excludeID string) error {
	sibling, err := s.folderRepo.GetByNameAndParent(ctx, userID, name, parentID)
	if err != nil {
		return fmt.Errorf("check for duplicate names: %w", err)
	}
	if sibling != nil && sibling.ID != excludeID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// validateFolderName enforces the folder naming rules on an already-trimmed name
func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name cannot be empty"),
		validation.RuneLength(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
}

// validatePathLength caps the full materialized path. A move can push an
// already-deep subtree over the limit even when every name is valid, so this
// runs on the computed path, not the name.
func validatePathLength(path string) error {
	if len(path) > config.MaxPathLength {
		return fmt.Errorf("%w: folder path exceeds %d characters", domain.ErrValidation, config.MaxPathLength)
	}
	return nil
}

// sameParent compares two nullable parent references
func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isNotFound is a local shorthand over the domain sentinel
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
