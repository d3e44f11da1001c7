package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/repository"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// UserRepoImpl implements the user store on PostgreSQL.
type UserRepoImpl struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB, log logger.Logger) repository.UserRepository {
	return &UserRepoImpl{
		db:     db,
		logger: log.WithComponent("user_repo"),
	}
}

// Create inserts the user conditionally on the (tenant_id, email) unique
// index. Under concurrent signups for the same pair exactly one insert wins;
// the rest receive a conflict error.
func (r *UserRepoImpl) Create(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user)
	if res.Error != nil {
		r.logger.Error(ctx, "Failed to create user", res.Error,
			logger.String("tenant_id", user.TenantID),
		)
		return apperrors.ErrInternal("user create failed").WithCause(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict("user already exists for this tenant")
	}

	r.logger.Info(ctx, "User created",
		logger.String("tenant_id", user.TenantID),
		logger.String("user_id", user.UserID),
	)
	return nil
}

// FindByEmail returns the user for the normalized email within the tenant.
func (r *UserRepoImpl) FindByEmail(ctx context.Context, tenantID, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound("user")
		}
		r.logger.Error(ctx, "Failed to retrieve user", err, logger.String("tenant_id", tenantID))
		return nil, apperrors.ErrInternal("user lookup failed").WithCause(err)
	}
	return &user, nil
}
