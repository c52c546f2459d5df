package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetOrCreateByExternalID returns the user row for a verified identity,
// inserting one on first sight. The upsert keeps email current and makes
// concurrent first requests from the same identity converge on one row.
func (r *PostgresUserRepository) GetOrCreateByExternalID(ctx context.Context, externalID, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, external_id, email, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_id) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, external_id, email, created_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	var user models.User
	err := executor.QueryRow(ctx, query,
		uuid.NewString(),
		externalID,
		email,
		time.Now(),
	).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	return &user, nil
}
