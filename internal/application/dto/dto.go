// Package dto defines the request and response shapes of the HTTP API.
package dto

import "time"

// RegisterResponse is returned by marketplace registration.
type RegisterResponse struct {
	TenantID string `json:"tenant_id"`
	Status   string `json:"status"`
	VNI      *int   `json:"vni"`
}

// StubRegisterRequest is the dev-mode registration payload, bypassing
// marketplace resolution. An empty customer identifier yields a generated dev
// one.
type StubRegisterRequest struct {
	CustomerIdentifier string `json:"customer_identifier"`
}

// CompleteProfileRequest creates the first user and activates the tenant.
type CompleteProfileRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates a user within a tenant.
type LoginRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterENIsRequest registers a batch of ENIs for the caller's tenant.
type RegisterENIsRequest struct {
	ENIIDs []string `json:"eni_ids" binding:"required"`
}

// RegisterENIsResponse reports how many ENIs were inserted and how many were
// already present.
type RegisterENIsResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// ListENIsResponse lists the tenant's registered ENIs.
type ListENIsResponse struct {
	ENIIDs []string `json:"eni_ids"`
}

// DeleteENIResponse confirms an ENI deletion.
type DeleteENIResponse struct {
	Deleted string `json:"deleted"`
}

// IngestDetectionRequest is the sensor-facing ingest payload. At least one of
// VNI or ENIID must be present to resolve the tenant.
type IngestDetectionRequest struct {
	VNI         *int    `json:"vni"`
	ENIID       *string `json:"eni_id"`
	SourceIP    string  `json:"source_ip" binding:"required"`
	Label       string  `json:"label" binding:"required"`
	Probability string  `json:"probability" binding:"required"`
	TS          *string `json:"ts"`
}

// IngestDetectionResponse confirms a stored detection.
type IngestDetectionResponse struct {
	Stored   bool   `json:"stored"`
	TenantID string `json:"tenant_id"`
	TS       string `json:"ts"`
}

// DetectionItem is one detection in the dashboard listing.
type DetectionItem struct {
	DetectionID string    `json:"detection_id"`
	ENIID       *string   `json:"eni_id"`
	VNI         *int      `json:"vni"`
	SourceIP    string    `json:"source_ip"`
	Label       string    `json:"label"`
	Probability string    `json:"probability"`
	TS          time.Time `json:"ts"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
