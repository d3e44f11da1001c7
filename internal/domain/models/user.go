package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a per-tenant credential record. Uniqueness is composite on
// (tenant_id, email): the same email may exist under different tenants as
// distinct users. Users are created via profile completion only and never
// updated or deleted here.
type User struct {
	UserID   string `json:"user_id" gorm:"column:user_id;primaryKey;size:36"`
	TenantID string `json:"tenant_id" gorm:"column:tenant_id;size:36;uniqueIndex:idx_tenant_email;not null"`

	// Email is stored normalized (lowercased, trimmed).
	Email string `json:"email" gorm:"column:email;size:255;uniqueIndex:idx_tenant_email;not null"`

	PasswordHash string    `json:"-" gorm:"column:password_hash;size:128;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName maps the model to the users table.
func (User) TableName() string { return "vigia_users" }

// NormalizeEmail applies the canonical email normalization used everywhere a
// user email enters the system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a user record with a normalized email. The password hash is
// supplied by the caller; this package never sees plaintext passwords.
func NewUser(tenantID, email, passwordHash string) *User {
	return &User{
		UserID:       uuid.NewString(),
		TenantID:     tenantID,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
