package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/auth"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, auth.VerifyPassword(hash, "correct-horse"))
	assert.ErrorIs(t, auth.VerifyPassword(hash, "wrong-horse"), auth.ErrInvalidCredentials)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	second, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
