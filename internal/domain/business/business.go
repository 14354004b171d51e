package business

import (
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Business represents a trading entity with a configured outbound policy.
// Every sale made by the business draws stock according to that policy.
type Business struct {
	shared.BaseEntity
	Name         string
	OutboundMode inventory.OutboundMode
}

// NewBusiness creates a new business with the given outbound mode
func NewBusiness(name string, mode inventory.OutboundMode) (*Business, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "business name is required")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "unrecognized outbound mode: "+mode.String())
	}
	return &Business{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		OutboundMode: mode,
	}, nil
}

// ChangeOutboundMode switches the business to a different outbound policy
func (b *Business) ChangeOutboundMode(mode inventory.OutboundMode) error {
	if !mode.IsValid() {
		return shared.NewDomainError(shared.ErrInvalidRequest.Code, "unrecognized outbound mode: "+mode.String())
	}
	b.OutboundMode = mode
	b.Touch()
	return nil
}
