package service

import (
	"context"
	"strings"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// ENIService manages the tenant's registered network interfaces.
type ENIService struct {
	eniRepo repository.NetworkIdentityRepository
	logger  logger.Logger
}

// NewENIService wires the ENI management use cases.
func NewENIService(eniRepo repository.NetworkIdentityRepository, log logger.Logger) *ENIService {
	return &ENIService{
		eniRepo: eniRepo,
		logger:  log.WithComponent("eni_service"),
	}
}

// RegisterBatch registers each ENI for the tenant. Already-registered pairs
// count as skipped instead of failing the batch.
func (s *ENIService) RegisterBatch(ctx context.Context, tenantID string, eniIDs []string) (*dto.RegisterENIsResponse, error) {
	if len(eniIDs) == 0 {
		return nil, apperrors.ErrValidation("eni_ids must not be empty")
	}

	resp := &dto.RegisterENIsResponse{}
	for _, eniID := range eniIDs {
		eniID = strings.TrimSpace(eniID)
		if eniID == "" {
			return nil, apperrors.ErrValidation("eni_ids must not contain empty values")
		}

		err := s.eniRepo.Register(ctx, tenantID, eniID)
		switch {
		case err == nil:
			resp.Inserted++
		case apperrors.IsConflict(err):
			resp.Skipped++
		default:
			return nil, err
		}
	}

	s.logger.Info(ctx, "ENI batch registered",
		logger.String("tenant_id", tenantID),
		logger.Int("inserted", resp.Inserted),
		logger.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

// List returns the tenant's registered ENI ids.
func (s *ENIService) List(ctx context.Context, tenantID string) (*dto.ListENIsResponse, error) {
	eniIDs, err := s.eniRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if eniIDs == nil {
		eniIDs = []string{}
	}
	return &dto.ListENIsResponse{ENIIDs: eniIDs}, nil
}

// Delete removes the ENI from the tenant. Deleting an unregistered ENI
// succeeds.
func (s *ENIService) Delete(ctx context.Context, tenantID, eniID string) (*dto.DeleteENIResponse, error) {
	eniID = strings.TrimSpace(eniID)
	if eniID == "" {
		return nil, apperrors.ErrValidation("eni_id is required")
	}
	if err := s.eniRepo.Delete(ctx, tenantID, eniID); err != nil {
		return nil, err
	}
	return &dto.DeleteENIResponse{Deleted: eniID}, nil
}
