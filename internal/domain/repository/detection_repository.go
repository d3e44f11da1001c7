package repository

import (
	"context"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
)

// DetectionRepository is the append-only, tenant-partitioned detection log.
type DetectionRepository interface {
	// Append stores a detection. The generated sort key makes the record
	// unique; valid input never conflicts.
	Append(ctx context.Context, detection *models.Detection) error

	// List returns up to limit detections for the tenant, newest first
	// (descending sort key). The caller is expected to have clamped limit to
	// constants.MaxDetectionLimit.
	List(ctx context.Context, tenantID string, limit int) ([]*models.Detection, error)
}
