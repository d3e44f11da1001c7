package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)
	require.NotEqual(t, "p", hash)

	assert.NoError(t, VerifyPassword(hash, "p"))
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("p")
	require.NoError(t, err)

	err = VerifyPassword(hash, "wrong")
	assert.True(t, apperrors.IsAuth(err))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("p")
	require.NoError(t, err)
	second, err := HashPassword("p")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
