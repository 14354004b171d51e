package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save persists the sale together with all of its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	saleModel := &models.SaleModel{}
	saleModel.FromDomain(sale)
	if err := r.db.WithContext(ctx).Create(saleModel).Error; err != nil {
		return err
	}

	if len(sale.Items) == 0 {
		return nil
	}
	itemModels := make([]models.SaleItemModel, len(sale.Items))
	for i := range sale.Items {
		itemModels[i].FromDomain(sale.Items[i])
	}
	return r.db.WithContext(ctx).Create(&itemModels).Error
}

// FindByID finds a sale (with items) by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var saleModel models.SaleModel
	if err := r.db.WithContext(ctx).First(&saleModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	sale := saleModel.ToDomain()
	items, err := r.loadItems(ctx, []uuid.UUID{sale.ID})
	if err != nil {
		return nil, err
	}
	sale.Items = items[sale.ID]
	return sale, nil
}

// FindByBusiness returns all sales of a business, newest first
func (r *GormSaleRepository) FindByBusiness(ctx context.Context, businessID uuid.UUID) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	if len(saleModels) == 0 {
		return []sales.Sale{}, nil
	}

	saleIDs := make([]uuid.UUID, len(saleModels))
	for i := range saleModels {
		saleIDs[i] = saleModels[i].ID
	}
	items, err := r.loadItems(ctx, saleIDs)
	if err != nil {
		return nil, err
	}

	result := make([]sales.Sale, 0, len(saleModels))
	for i := range saleModels {
		sale := saleModels[i].ToDomain()
		sale.Items = items[sale.ID]
		result = append(result, *sale)
	}
	return result, nil
}

// loadItems fetches the items of the given sales in one query, grouped by sale ID
func (r *GormSaleRepository) loadItems(ctx context.Context, saleIDs []uuid.UUID) (map[uuid.UUID][]sales.SaleItem, error) {
	var itemModels []models.SaleItemModel
	if err := r.db.WithContext(ctx).
		Where("sale_id IN ?", saleIDs).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]sales.SaleItem, len(saleIDs))
	for i := range itemModels {
		item := itemModels[i].ToDomain()
		grouped[item.SaleID] = append(grouped[item.SaleID], item)
	}
	return grouped, nil
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)
