package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

func TestUserCreateAndFindByEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	user := models.NewUser("t1", "A@x.com", "hash")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "t1", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, found.UserID)
	assert.Equal(t, "a@x.com", found.Email)
}

func TestUserCreateDuplicateEmailConflicts(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.NewUser("t1", "a@x.com", "hash")))

	err := repo.Create(ctx, models.NewUser("t1", "a@x.com", "other-hash"))
	assert.True(t, apperrors.IsConflict(err))
}

func TestSameEmailDifferentTenantsAreDistinctUsers(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.NewUser("t1", "a@x.com", "hash")))
	require.NoError(t, repo.Create(ctx, models.NewUser("t2", "a@x.com", "hash")))

	first, err := repo.FindByEmail(ctx, "t1", "a@x.com")
	require.NoError(t, err)
	second, err := repo.FindByEmail(ctx, "t2", "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.UserID, second.UserID)
}

func TestFindByEmailMissingUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t), logger.NewNopLogger())

	_, err := repo.FindByEmail(context.Background(), "t1", "nobody@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}
