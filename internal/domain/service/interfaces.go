// Package service defines the domain service interfaces implemented by the
// infrastructure layer.
package service

import (
	"context"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
)

// CustomerResolver is the external marketplace resolution service. It maps a
// registration token to a customer identity or fails with a validation error
// (invalid token) or an upstream error (service failure).
type CustomerResolver interface {
	ResolveCustomer(ctx context.Context, registrationToken string) (*models.CustomerResolution, error)
}

// SessionService issues and validates the bearer tokens that gate access to
// tenant-scoped data.
type SessionService interface {
	// Issue signs a token for the subject email bound to the tenant.
	Issue(ctx context.Context, email, tenantID string) (string, error)

	// Validate verifies signature, issuer, and expiry. Every failure mode
	// collapses to the same generic auth error; the audience claim is not
	// verified.
	Validate(ctx context.Context, token string) (*models.SessionClaims, error)
}

// DetectionPublisher fans successfully stored detections out to downstream
// consumers. Publishing is best effort relative to the synchronous ingest
// path.
type DetectionPublisher interface {
	Publish(ctx context.Context, detection *models.Detection) error
	Close() error
}

// TenantLookupCache caches VNI and ENI to tenant resolutions for the ingest
// hot path. A miss returns ok=false with a nil error.
type TenantLookupCache interface {
	Get(ctx context.Context, key string) (tenantID string, ok bool, err error)
	Set(ctx context.Context, key, tenantID string) error
}
