package services

import (
	"context"

	"studydeck/internal/domain/models"
)

// TreeService builds the nested folder/document tree for a user.
type TreeService interface {
	// GetTree returns the user's full tree, folders nested, documents attached
	GetTree(ctx context.Context, userID string) (*models.TreeNode, error)
}
