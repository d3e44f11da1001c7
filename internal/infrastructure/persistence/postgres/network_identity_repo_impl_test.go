package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

func TestENIRegisterAndList(t *testing.T) {
	repo := NewNetworkIdentityRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "t1", "eni-1"))
	require.NoError(t, repo.Register(ctx, "t1", "eni-2"))
	require.NoError(t, repo.Register(ctx, "t2", "eni-3"))

	eniIDs, err := repo.List(ctx, "t1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"eni-1", "eni-2"}, eniIDs)
}

func TestENIRegisterDuplicatePairConflicts(t *testing.T) {
	repo := NewNetworkIdentityRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "t1", "eni-1"))

	err := repo.Register(ctx, "t1", "eni-1")
	assert.True(t, apperrors.IsConflict(err))
}

func TestENIDeleteIsIdempotent(t *testing.T) {
	repo := NewNetworkIdentityRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "t1", "eni-1"))
	require.NoError(t, repo.Delete(ctx, "t1", "eni-1"))
	require.NoError(t, repo.Delete(ctx, "t1", "eni-1"))

	eniIDs, err := repo.List(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, eniIDs)
}

func TestENIReverseLookup(t *testing.T) {
	repo := NewNetworkIdentityRepository(newTestDB(t), logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Register(ctx, "t1", "eni-1"))

	tenantID, err := repo.ReverseLookup(ctx, "eni-1")
	require.NoError(t, err)
	assert.Equal(t, "t1", tenantID)

	_, err = repo.ReverseLookup(ctx, "eni-unknown")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestENIReverseLookupEarliestRegistrationWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewNetworkIdentityRepository(db, logger.NewNopLogger())
	ctx := context.Background()

	// The same ENI registered under two tenants with explicit timestamps.
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seed := []models.NetworkIdentity{
		{TenantID: "t-late", ENIID: "eni-shared", CreatedAt: base.Add(time.Hour)},
		{TenantID: "t-early", ENIID: "eni-shared", CreatedAt: base},
	}
	require.NoError(t, db.Session(&gorm.Session{}).Create(&seed).Error)

	tenantID, err := repo.ReverseLookup(ctx, "eni-shared")
	require.NoError(t, err)
	assert.Equal(t, "t-early", tenantID)
}
