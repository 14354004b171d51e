package models

import (
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/inventory"
)

// BusinessModel is the persistence model for the Business domain entity.
type BusinessModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	OutboundMode string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToDomain converts the persistence model to a domain Business entity.
func (m *BusinessModel) ToDomain() *business.Business {
	return &business.Business{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		OutboundMode: inventory.OutboundMode(m.OutboundMode),
	}
}

// FromDomain populates the persistence model from a domain Business entity.
func (m *BusinessModel) FromDomain(b *business.Business) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.OutboundMode = b.OutboundMode.String()
}

// BusinessModelFromDomain creates a new persistence model from a domain Business entity.
func BusinessModelFromDomain(b *business.Business) *BusinessModel {
	m := &BusinessModel{}
	m.FromDomain(b)
	return m
}
