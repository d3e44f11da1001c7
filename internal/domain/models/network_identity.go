package models

import "time"

// NetworkIdentity associates a tenant with an elastic network interface (ENI).
// The pair (tenant_id, eni_id) is unique. The reverse mapping eni_id ->
// tenant_id is not enforced exclusive across tenants; reverse lookups resolve
// to the earliest registration (first match wins).
type NetworkIdentity struct {
	TenantID  string    `json:"tenant_id" gorm:"column:tenant_id;primaryKey;size:36"`
	ENIID     string    `json:"eni_id" gorm:"column:eni_id;primaryKey;size:64;index:idx_eni_reverse"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName maps the model to the ENI registrations table.
func (NetworkIdentity) TableName() string { return "vigia_tenant_enis" }
