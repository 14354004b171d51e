package catalog

import (
	"github.com/stockflow/backend/internal/domain/shared"
)

// Product represents a sellable item. Its identity (ID and unique code) is
// immutable once created; stock for it lives in inventory batches.
type Product struct {
	shared.BaseEntity
	Code        string // unique, human-assigned
	Name        string
	Description string
}

// NewProduct creates a new product
func NewProduct(code, name, description string) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "product code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "product name is required")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Name:        name,
		Description: description,
	}, nil
}
