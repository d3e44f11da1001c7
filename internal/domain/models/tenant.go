// Package models defines the domain models for the Vigia provisioning
// service.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vigiaai/vigia-provision/pkg/constants"
)

// Tenant is an isolated customer account originating from a marketplace
// subscription. The tenant directory is the single source of truth for tenant
// identity and status; every other store references TenantID without cascading
// integrity enforcement.
type Tenant struct {
	// TenantID is the generated primary key.
	TenantID string `json:"tenant_id" gorm:"column:tenant_id;primaryKey;size:36"`

	// CustomerIdentifier is the marketplace customer identity. At most one
	// tenant exists per customer identifier.
	CustomerIdentifier string `json:"customer_identifier" gorm:"column:customer_identifier;size:128;uniqueIndex;not null"`

	// AWSAccountID is the buyer account reported by the marketplace.
	AWSAccountID string `json:"aws_account_id" gorm:"column:aws_account_id;size:32"`

	// ProductCode identifies the subscribed marketplace product.
	ProductCode string `json:"product_code" gorm:"column:product_code;size:64"`

	// Status is the lifecycle state. Created PENDING_PROFILE, moved to ACTIVE
	// when the first user completes the profile. SUSPENDED has no writer in
	// this service.
	Status constants.TenantStatus `json:"status" gorm:"column:status;size:32;not null"`

	// VNI is the tenant-unique virtual network identifier in
	// [constants.VNIMin, constants.VNIMax], assigned at creation.
	VNI *int `json:"vni,omitempty" gorm:"column:vni;uniqueIndex"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName maps the model to the tenants table.
func (Tenant) TableName() string { return "vigia_tenants" }

// NewTenant builds a PENDING_PROFILE tenant for a freshly resolved marketplace
// customer. The VNI is assigned by the repository under its uniqueness
// constraint.
func NewTenant(customerIdentifier, awsAccountID, productCode string) *Tenant {
	return &Tenant{
		TenantID:           uuid.NewString(),
		CustomerIdentifier: customerIdentifier,
		AWSAccountID:       awsAccountID,
		ProductCode:        productCode,
		Status:             constants.TenantStatusPendingProfile,
		CreatedAt:          time.Now().UTC(),
	}
}

// IsActive reports whether the tenant completed its profile.
func (t *Tenant) IsActive() bool {
	return t.Status == constants.TenantStatusActive
}

// IsPendingProfile reports whether the tenant still awaits its first user.
func (t *Tenant) IsPendingProfile() bool {
	return t.Status == constants.TenantStatusPendingProfile
}
