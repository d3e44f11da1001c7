// Package service implements the application use cases composing the domain
// repositories and infrastructure collaborators.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vigiaai/vigia-provision/internal/application/dto"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	domainservice "github.com/vigiaai/vigia-provision/internal/domain/service"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/crypto"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// ProvisioningService handles marketplace registration and profile completion.
type ProvisioningService struct {
	resolver   domainservice.CustomerResolver
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	sessions   domainservice.SessionService
	metrics    *monitoring.Metrics
	logger     logger.Logger
}

// NewProvisioningService wires the registration use cases.
func NewProvisioningService(
	resolver domainservice.CustomerResolver,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	sessions domainservice.SessionService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		resolver:   resolver,
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		sessions:   sessions,
		metrics:    metrics,
		logger:     log.WithComponent("provisioning_service"),
	}
}

// Register resolves a marketplace registration token to a tenant, creating
// the tenant on first sight. Re-registering with the same token returns the
// existing tenant unchanged.
func (s *ProvisioningService) Register(ctx context.Context, registrationToken string) (*dto.RegisterResponse, error) {
	if strings.TrimSpace(registrationToken) == "" {
		return nil, apperrors.ErrValidation("token is required")
	}

	resolution, err := s.resolver.ResolveCustomer(ctx, registrationToken)
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return nil, err
	}

	tenant, err := s.tenantRepo.ResolveOrCreate(ctx,
		resolution.CustomerIdentifier, resolution.AWSAccountID, resolution.ProductCode)
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	s.metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info(ctx, "Marketplace registration resolved",
		logger.String("tenant_id", tenant.TenantID),
		logger.String("status", string(tenant.Status)),
	)

	return &dto.RegisterResponse{
		TenantID: tenant.TenantID,
		Status:   string(tenant.Status),
		VNI:      tenant.VNI,
	}, nil
}

// CompleteProfile creates the tenant's first user and activates the tenant,
// then issues a session token. The two writes are not atomic: when a previous
// attempt created the user but failed before activation, the retry verifies
// the same credentials and finishes the activation instead of failing on the
// user conflict.
func (s *ProvisioningService) CompleteProfile(ctx context.Context, req *dto.CompleteProfileRequest) (*dto.TokenResponse, error) {
	if err := validateCredentials(req.TenantID, req.Email, req.Password); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Email)
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(tenant.TenantID, email, hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if !apperrors.IsConflict(err) {
			return nil, err
		}
		// Retry after a partial completion: the user exists but activation may
		// not have happened. Accept only matching credentials.
		existing, findErr := s.userRepo.FindByEmail(ctx, tenant.TenantID, email)
		if findErr != nil {
			return nil, err
		}
		if verifyErr := crypto.VerifyPassword(existing.PasswordHash, req.Password); verifyErr != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.UpdateStatus(ctx, tenant.TenantID, constants.TenantStatusActive); err != nil {
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, email, tenant.TenantID)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Profile completed",
		logger.String("tenant_id", tenant.TenantID),
	)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   constants.TokenTypeBearer,
	}, nil
}

// StubRegister creates or resolves a synthetic tenant, bypassing marketplace
// resolution. A missing customer identifier gets a fresh dev one. Exposed only
// in dev mode.
func (s *ProvisioningService) StubRegister(ctx context.Context, customerIdentifier string) (*dto.RegisterResponse, error) {
	customerIdentifier = strings.TrimSpace(customerIdentifier)
	if customerIdentifier == "" {
		customerIdentifier = "dev-" + uuid.NewString()
	}

	tenant, err := s.tenantRepo.ResolveOrCreate(ctx, customerIdentifier, "000000000000", "DEV-PRODUCT")
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Stub registration resolved",
		logger.String("tenant_id", tenant.TenantID),
	)

	return &dto.RegisterResponse{
		TenantID: tenant.TenantID,
		Status:   string(tenant.Status),
		VNI:      tenant.VNI,
	}, nil
}

func registrationOutcome(err error) string {
	switch {
	case apperrors.IsValidation(err):
		return "invalid_token"
	case apperrors.IsUpstream(err):
		return "upstream_error"
	default:
		return "error"
	}
}

func validateCredentials(tenantID, email, password string) error {
	if strings.TrimSpace(tenantID) == "" {
		return apperrors.ErrValidation("tenant_id is required")
	}
	if strings.TrimSpace(email) == "" {
		return apperrors.ErrValidation("email is required")
	}
	if password == "" {
		return apperrors.ErrValidation("password is required")
	}
	return nil
}
