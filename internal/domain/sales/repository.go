package sales

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// Save persists the sale together with all of its items
	Save(ctx context.Context, sale *Sale) error

	// FindByID finds a sale (with items) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByBusiness returns all sales of a business, newest first
	FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]Sale, error)
}
