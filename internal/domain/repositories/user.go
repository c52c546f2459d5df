package repositories

import (
	"context"

	"studydeck/internal/domain/models"
)

// UserRepository maps verified external identities to internal user rows.
type UserRepository interface {
	// GetOrCreateByExternalID returns the user for a verified subject,
	// provisioning a row on first sight
	GetOrCreateByExternalID(ctx context.Context, externalID, email string) (*models.User, error)
}
