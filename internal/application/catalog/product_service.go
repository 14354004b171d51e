package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	log         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, log: log}
}

// CreateProduct creates a product with a unique code
func (s *ProductService) CreateProduct(ctx context.Context, code, name, description string) (*catalog.Product, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "product code already in use: "+code)
	}

	product, err := catalog.NewProduct(code, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.String("code", product.Code), zap.String("id", product.ID.String()))
	return product, nil
}

// GetProduct finds a product by UUID or unique code
func (s *ProductService) GetProduct(ctx context.Context, idOrCode string) (*catalog.Product, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		product, err := s.productRepo.FindByID(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return s.productRepo.FindByCode(ctx, idOrCode)
}

// ListProducts returns all products
func (s *ProductService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindAll(ctx)
}
