// Package constants defines shared enumerations and limits for the Vigia
// provisioning service.
package constants

// TenantStatus represents the lifecycle state of a tenant account.
type TenantStatus string

const (
	// TenantStatusPendingProfile marks a tenant created from a marketplace
	// registration that has no user yet.
	TenantStatusPendingProfile TenantStatus = "PENDING_PROFILE"

	// TenantStatusActive marks a tenant whose first user completed the profile.
	TenantStatusActive TenantStatus = "ACTIVE"

	// TenantStatusSuspended is reserved for administrative suspension. No flow
	// in this service writes it.
	TenantStatusSuspended TenantStatus = "SUSPENDED"
)

// DetectionLabel classifies an ingested detection.
type DetectionLabel string

const (
	DetectionLabelMalware DetectionLabel = "MALWARE"
	DetectionLabelClean   DetectionLabel = "CLEAN"
)

// VNI assignment bounds. A VNI is a tenant-unique integer tag identifying the
// tenant's mirrored network traffic.
const (
	VNIMin = 1000
	VNIMax = 999999
)

// VNIAssignAttempts bounds the regenerate-on-conflict loop when drawing a
// fresh VNI against the uniqueness constraint.
const VNIAssignAttempts = 5

// Detection listing limits. Requests above the cap are clamped.
const (
	DefaultDetectionLimit = 200
	MaxDetectionLimit     = 200
)

// BcryptCost is the work factor for user password hashes.
const BcryptCost = 12

// Session token settings.
const (
	TokenTypeBearer = "bearer"
	DefaultIssuer   = "ransomproof"
)

// Context keys used by HTTP middleware to pass the authenticated principal to
// handlers.
type ContextKey string

const (
	ContextKeyTenantID  ContextKey = "tenant_id"
	ContextKeyUserEmail ContextKey = "user_email"
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyTraceID   ContextKey = "trace_id"
)
