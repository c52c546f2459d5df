package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"studydeck/internal/domain"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/repositories"
)

const folderColumns = "id, user_id, parent_id, name, path, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface.
//
// Subtree predicates compare character prefixes with substr instead of LIKE
// so folder names containing % or _ need no wildcard escaping. A path "is
// inside" oldPath exactly when its first len(oldPath)+1 characters equal
// oldPath followed by "/" - the separator rules out /Bio matching /Biology.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new folder row
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, parent_id, name, path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.ID,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflictError(ctx, folder.UserID, folder.Name, folder.ParentID)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, folderColumns, r.tables.Folders)

	return r.scanOne(ctx, id, query, id, userID)
}

// GetByIDForUpdate retrieves a folder and takes a row lock. Must run inside
// a transaction; mutating operations use this to serialize concurrent
// writers touching the same subtree.
func (r *PostgresFolderRepository) GetByIDForUpdate(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, folderColumns, r.tables.Folders)

	return r.scanOne(ctx, id, query, id, userID)
}

// GetByNameAndParent finds a sibling by name; returns (nil, nil) when absent
func (r *PostgresFolderRepository) GetByNameAndParent(ctx context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND name = $2 AND parent_id IS NULL
		`, folderColumns, r.tables.Folders)
		args = []interface{}{userID, name}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND name = $2 AND parent_id = $3
		`, folderColumns, r.tables.Folders)
		args = []interface{}{userID, name, *parentID}
	}

	executor := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := executor.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, fmt.Errorf("get folder by name and parent: %w", err)
	}

	return &folder, nil
}

// Update persists parent_id, name, path and updated_at
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, path = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.Path,
		folder.UpdatedAt,
		folder.ID,
		folder.UserID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflictError(ctx, folder.UserID, folder.Name, folder.ParentID)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes one folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete folder: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = []interface{}{userID}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = []interface{}{userID, *parentID}
	}

	if opts != nil {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.PageSize, opts.Offset())
	}

	return r.scanMany(ctx, query, args...)
}

// ListDescendants lists every folder strictly below the given path
func (r *PostgresFolderRepository) ListDescendants(ctx context.Context, userID, path string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND substr(path, 1, length($2) + 1) = $2 || '/'
		ORDER BY path ASC
	`, folderColumns, r.tables.Folders)

	return r.scanMany(ctx, query, userID, path)
}

// GetAncestors returns the root-to-target chain for the given path. The
// target's path is its own ancestor set rendered as prefixes, so one scan
// over prefix matches replaces walking parent_id pointers.
func (r *PostgresFolderRepository) GetAncestors(ctx context.Context, userID, path string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND (path = $2 OR substr($2, 1, length(path) + 1) = path || '/')
		ORDER BY length(path) ASC
	`, folderColumns, r.tables.Folders)

	return r.scanMany(ctx, query, userID, path)
}

// RewriteDescendantPaths swaps the oldPath prefix for newPath on every
// descendant, leaving each suffix untouched
func (r *PostgresFolderRepository) RewriteDescendantPaths(ctx context.Context, userID, oldPath, newPath string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $3 || substr(path, length($2) + 1), updated_at = now()
		WHERE user_id = $1 AND substr(path, 1, length($2) + 1) = $2 || '/'
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, oldPath, newPath)
	if err != nil {
		return 0, fmt.Errorf("rewrite descendant paths: %w", err)
	}

	return result.RowsAffected(), nil
}

// DeleteDescendants removes every folder strictly below the given path
func (r *PostgresFolderRepository) DeleteDescendants(ctx context.Context, userID, path string) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND substr(path, 1, length($2) + 1) = $2 || '/'
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, path)
	if err != nil {
		return 0, fmt.Errorf("delete descendants: %w", err)
	}

	return result.RowsAffected(), nil
}

// GetAllByUser retrieves all folders for a user (flat list)
func (r *PostgresFolderRepository) GetAllByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	return r.scanMany(ctx, query, userID)
}

// conflictError builds a ConflictError carrying the existing sibling's ID.
// Used when the unique constraint fires under a check/write race.
func (r *PostgresFolderRepository) conflictError(ctx context.Context, userID, name string, parentID *string) error {
	existing, err := r.GetByNameAndParent(ctx, userID, name, parentID)
	if err != nil || existing == nil {
		return fmt.Errorf("folder %q already exists in this location: %w", name, domain.ErrConflict)
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
		ResourceType: "folder",
		ResourceID:   existing.ID,
	}
}

func (r *PostgresFolderRepository) scanOne(ctx context.Context, id, query string, args ...interface{}) (*models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	var folder models.Folder
	err := executor.QueryRow(ctx, query, args...).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.ParentID,
		&folder.Name,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

func (r *PostgresFolderRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.ParentID,
			&folder.Name,
			&folder.Path,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
