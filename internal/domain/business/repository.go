package business

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// FindByID finds a business by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindAll returns all businesses
	FindAll(ctx context.Context) ([]Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, b *Business) error
}
