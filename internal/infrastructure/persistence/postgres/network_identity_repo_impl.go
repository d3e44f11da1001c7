package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// NetworkIdentityRepoImpl implements the ENI registry on PostgreSQL.
type NetworkIdentityRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewNetworkIdentityRepository creates a GORM-backed ENI registry.
func NewNetworkIdentityRepository(db *gorm.DB, log logger.Logger) repository.NetworkIdentityRepository {
	return &NetworkIdentityRepoImpl{
		db:     db,
		logger: log.WithComponent("eni_repo"),
	}
}

// Register inserts the (tenant_id, eni_id) pair conditionally on the composite
// primary key. The pair existing already is a conflict; the same ENI under a
// different tenant is not checked.
func (r *NetworkIdentityRepoImpl) Register(ctx context.Context, tenantID, eniID string) error {
	record := &models.NetworkIdentity{
		TenantID:  tenantID,
		ENIID:     eniID,
		CreatedAt: time.Now().UTC(),
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if res.Error != nil {
		r.logger.Error(ctx, "Failed to register eni", res.Error,
			logger.String("tenant_id", tenantID),
			logger.String("eni_id", eniID),
		)
		return apperrors.ErrInternal("eni registration failed").WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict("eni already registered for this tenant")
	}
	return nil
}

// List returns the ENI ids registered for the tenant.
func (r *NetworkIdentityRepoImpl) List(ctx context.Context, tenantID string) ([]string, error) {
	var eniIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.NetworkIdentity{}).
		Where("tenant_id = ?", tenantID).
		Pluck("eni_id", &eniIDs).Error
	if err != nil {
		r.logger.Error(ctx, "Failed to list enis", err, logger.String("tenant_id", tenantID))
		return nil, apperrors.ErrInternal("eni listing failed").WithCause(err)
	}
	return eniIDs, nil
}

// Delete removes the pair. A missing pair is a no-op, which makes retries
// idempotent.
func (r *NetworkIdentityRepoImpl) Delete(ctx context.Context, tenantID, eniID string) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND eni_id = ?", tenantID, eniID).
		Delete(&models.NetworkIdentity{})
	if res.Error != nil {
		r.logger.Error(ctx, "Failed to delete eni", res.Error,
			logger.String("tenant_id", tenantID),
			logger.String("eni_id", eniID),
		)
		return apperrors.ErrInternal("eni deletion failed").WithCause(res.Error)
	}
	return nil
}

// ReverseLookup resolves an ENI to its tenant. Ordering by created_at makes
// the first-match semantics deterministic when an ENI was registered under
// several tenants.
func (r *NetworkIdentityRepoImpl) ReverseLookup(ctx context.Context, eniID string) (string, error) {
	var record models.NetworkIdentity
	err := r.db.WithContext(ctx).
		Where("eni_id = ?", eniID).
		Order("created_at ASC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound("eni registration")
		}
		r.logger.Error(ctx, "Failed to reverse-lookup eni", err, logger.String("eni_id", eniID))
		return "", apperrors.ErrInternal("eni lookup failed").WithCause(err)
	}
	return record.TenantID, nil
}
