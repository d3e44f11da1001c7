package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// DetectionRepoImpl implements the detection log on PostgreSQL.
type DetectionRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewDetectionRepository creates a GORM-backed detection log.
func NewDetectionRepository(db *gorm.DB, log logger.Logger) repository.DetectionRepository {
	return &DetectionRepoImpl{
		db:     db,
		logger: log.WithComponent("detection_repo"),
	}
}

// Append stores a detection. The sort key embeds a generated id, so valid
// input never violates the (tenant_id, sort_key) key.
func (r *DetectionRepoImpl) Append(ctx context.Context, detection *models.Detection) error {
	if err := r.db.WithContext(ctx).Create(detection).Error; err != nil {
		r.logger.Error(ctx, "Failed to append detection", err,
			logger.String("tenant_id", detection.TenantID),
		)
		return apperrors.ErrInternal("detection append failed").WithCause(err)
	}
	return nil
}

// List returns up to limit detections, newest first. A non-positive limit
// falls back to the default; the cap is enforced here as the last line of
// defense.
func (r *DetectionRepoImpl) List(ctx context.Context, tenantID string, limit int) ([]*models.Detection, error) {
	if limit <= 0 {
		limit = constants.DefaultDetectionLimit
	}
	if limit > constants.MaxDetectionLimit {
		limit = constants.MaxDetectionLimit
	}

	var detections []*models.Detection
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_key DESC").
		Limit(limit).
		Find(&detections).Error
	if err != nil {
		r.logger.Error(ctx, "Failed to list detections", err, logger.String("tenant_id", tenantID))
		return nil, apperrors.ErrInternal("detection listing failed").WithCause(err)
	}
	return detections, nil
}
