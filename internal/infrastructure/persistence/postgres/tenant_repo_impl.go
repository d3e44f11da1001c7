package postgres

import (
	"context"
	"errors"
	"math/rand/v2"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// TenantRepoImpl implements the tenant directory on PostgreSQL.
type TenantRepoImpl struct {
	db      *gorm.DB
	metrics *monitoring.Metrics
	logger  logger.Logger

	// drawVNI draws a candidate VNI. Replaceable in tests to drive the
	// collision paths deterministically.
	drawVNI func() int
}

// NewTenantRepository creates a GORM-backed tenant repository.
func NewTenantRepository(db *gorm.DB, metrics *monitoring.Metrics, log logger.Logger) repository.TenantRepository {
	return &TenantRepoImpl{
		db:      db,
		metrics: metrics,
		logger:  log.WithComponent("tenant_repo"),
		drawVNI: randomVNI,
	}
}

// ResolveOrCreate returns the tenant for the customer identifier, creating it
// when absent. Creation is a conditional insert guarded by the unique indexes
// on customer_identifier and vni; a rejected insert is resolved by re-querying
// (concurrent create for the same customer) or by redrawing the VNI
// (collision), up to constants.VNIAssignAttempts draws.
func (r *TenantRepoImpl) ResolveOrCreate(ctx context.Context, customerIdentifier, awsAccountID, productCode string) (*models.Tenant, error) {
	var existing models.Tenant
	err := r.db.WithContext(ctx).
		Where("customer_identifier = ?", customerIdentifier).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Error(ctx, "Failed to query tenant by customer identifier", err)
		return nil, apperrors.ErrInternal("tenant lookup failed").WithCause(err)
	}

	for attempt := 0; attempt < constants.VNIAssignAttempts; attempt++ {
		tenant := models.NewTenant(customerIdentifier, awsAccountID, productCode)
		vni := r.drawVNI()
		tenant.VNI = &vni

		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(tenant)
		if res.Error != nil {
			r.logger.Error(ctx, "Failed to create tenant", res.Error,
				logger.String("customer_identifier", customerIdentifier),
			)
			return nil, apperrors.ErrInternal("tenant create failed").WithCause(res.Error)
		}
		if res.RowsAffected == 1 {
			r.logger.Info(ctx, "Tenant created",
				logger.String("tenant_id", tenant.TenantID),
				logger.String("customer_identifier", customerIdentifier),
				logger.Int("vni", vni),
			)
			return tenant, nil
		}

		// Insert was rejected. Either a concurrent call created the tenant
		// for this customer, or the drawn VNI is taken.
		err = r.db.WithContext(ctx).
			Where("customer_identifier = ?", customerIdentifier).
			First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInternal("tenant lookup failed").WithCause(err)
		}

		r.metrics.VNICollisionRedraws.Inc()
		r.logger.Warn(ctx, "VNI collision, redrawing",
			logger.Int("vni", vni),
			logger.Int("attempt", attempt+1),
		)
	}

	return nil, apperrors.ErrConflict("could not assign a unique vni")
}

// FindByID retrieves a tenant by its primary key.
func (r *TenantRepoImpl) FindByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("tenant")
		}
		r.logger.Error(ctx, "Failed to retrieve tenant", err, logger.String("tenant_id", tenantID))
		return nil, apperrors.ErrInternal("tenant lookup failed").WithCause(err)
	}
	return &tenant, nil
}

// FindByVNI resolves a VNI to its tenant.
func (r *TenantRepoImpl) FindByVNI(ctx context.Context, vni int) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).
		Where("vni = ?", vni).
		First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("tenant")
		}
		r.logger.Error(ctx, "Failed to retrieve tenant by vni", err, logger.Int("vni", vni))
		return nil, apperrors.ErrInternal("tenant lookup failed").WithCause(err)
	}
	return &tenant, nil
}

// UpdateStatus sets the tenant status. Updating a missing tenant returns a
// not-found error; re-applying the current status is a no-op success, which
// keeps activation retries idempotent.
func (r *TenantRepoImpl) UpdateStatus(ctx context.Context, tenantID string, status constants.TenantStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("tenant_id = ?", tenantID).
		Update("status", status)
	if res.Error != nil {
		r.logger.Error(ctx, "Failed to update tenant status", res.Error,
			logger.String("tenant_id", tenantID),
			logger.String("status", string(status)),
		)
		return apperrors.ErrInternal("tenant status update failed").WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound("tenant")
	}

	r.logger.Info(ctx, "Tenant status updated",
		logger.String("tenant_id", tenantID),
		logger.String("status", string(status)),
	)
	return nil
}

// randomVNI draws a candidate VNI. Uniqueness is not trusted to randomness;
// the caller retries against the unique index.
func randomVNI() int {
	return constants.VNIMin + rand.IntN(constants.VNIMax-constants.VNIMin+1)
}
