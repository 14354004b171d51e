package business

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// BusinessService handles business registration and configuration
type BusinessService struct {
	businessRepo business.BusinessRepository
	log          *zap.Logger
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo business.BusinessRepository, log *zap.Logger) *BusinessService {
	return &BusinessService{businessRepo: businessRepo, log: log}
}

// CreateBusiness registers a business with its outbound mode
func (s *BusinessService) CreateBusiness(ctx context.Context, name string, mode inventory.OutboundMode) (*business.Business, error) {
	biz, err := business.NewBusiness(name, mode)
	if err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, biz); err != nil {
		return nil, err
	}

	s.log.Info("business created",
		zap.String("id", biz.ID.String()),
		zap.String("name", biz.Name),
		zap.String("outbound_mode", biz.OutboundMode.String()),
	)
	return biz, nil
}

// GetBusiness finds a business by ID
func (s *BusinessService) GetBusiness(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	return s.businessRepo.FindByID(ctx, id)
}

// ListBusinesses returns all businesses
func (s *BusinessService) ListBusinesses(ctx context.Context) ([]business.Business, error) {
	return s.businessRepo.FindAll(ctx)
}

// ChangeOutboundMode switches a business to a different outbound policy
func (s *BusinessService) ChangeOutboundMode(ctx context.Context, id uuid.UUID, mode inventory.OutboundMode) (*business.Business, error) {
	biz, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := biz.ChangeOutboundMode(mode); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, biz); err != nil {
		return nil, err
	}

	s.log.Info("outbound mode changed",
		zap.String("id", biz.ID.String()),
		zap.String("outbound_mode", biz.OutboundMode.String()),
	)
	return biz, nil
}
