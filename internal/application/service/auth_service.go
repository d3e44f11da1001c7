package service

import (
	"context"

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

// AuthService handles tenant-scoped user authentication.
type AuthService struct {
	userRepo repository.UserRepository
	sessions domainservice.SessionService
	metrics  *monitoring.Metrics
	logger   logger.Logger
}

// NewAuthService wires the login use case.
func NewAuthService(
	userRepo repository.UserRepository,
	sessions domainservice.SessionService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		metrics:  metrics,
		logger:   log.WithComponent("auth_service"),
	}
}

// Login authenticates (tenant_id, email, password) and issues a bearer token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := validateCredentials(req.TenantID, req.Email, req.Password); err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Email)
	user, err := s.userRepo.FindByEmail(ctx, req.TenantID, email)
	if err != nil {
		s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrAuth()
		}
		return nil, err
	}

	if err := crypto.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	token, err := s.sessions.Issue(ctx, user.Email, user.TenantID)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info(ctx, "User logged in",
		logger.String("tenant_id", user.TenantID),
		logger.String("user_id", user.UserID),
	)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   constants.TokenTypeBearer,
	}, nil
}
