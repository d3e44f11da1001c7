package repository

import (
	"context"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
)

// UserRepository stores per-tenant credential records keyed by
// (tenant_id, email).
type UserRepository interface {
	// Create inserts the user conditionally on (tenant_id, email) being
	// free; an existing pair yields a conflict error. The user's email must
	// already be normalized.
	Create(ctx context.Context, user *models.User) error

	// FindByEmail returns the user for the normalized email within the
	// tenant, or a not-found error.
	FindByEmail(ctx context.Context, tenantID, email string) (*models.User, error)
}
