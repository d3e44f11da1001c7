// Package repository defines the persistence interfaces for the provisioning
// domain. Implementations live under internal/infrastructure/persistence and
// are injected at construction, never reached through globals.
package repository

import (
	"context"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/pkg/constants"
)

// TenantRepository is the tenant directory: the single source of truth for
// tenant identity and status, with secondary lookups by customer identifier
// and by VNI.
type TenantRepository interface {
	// ResolveOrCreate returns the tenant for the customer identifier,
	// creating a PENDING_PROFILE tenant with a fresh unique VNI when none
	// exists. The create is a conditional insert: under concurrent calls for
	// the same customer exactly one tenant record results and all callers
	// receive it.
	ResolveOrCreate(ctx context.Context, customerIdentifier, awsAccountID, productCode string) (*models.Tenant, error)

	// FindByID returns the tenant or a not-found error.
	FindByID(ctx context.Context, tenantID string) (*models.Tenant, error)

	// FindByVNI resolves a VNI to its tenant or returns a not-found error.
	FindByVNI(ctx context.Context, vni int) (*models.Tenant, error)

	// UpdateStatus sets the tenant status. A missing tenant yields a
	// not-found error. SUSPENDED is writable only through this method, for a
	// future administrative surface; no flow in this service calls it with
	// that status.
	UpdateStatus(ctx context.Context, tenantID string, status constants.TenantStatus) error
}
