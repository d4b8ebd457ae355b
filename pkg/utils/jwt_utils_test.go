package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("parent-123", "gamze@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "parent-123", claims.ParentID)
	assert.Equal(t, "gamze@example.com", claims.Email)
	assert.Equal(t, "brushtrack-backend", claims.Issuer)
}

func TestRefreshTokenCarriesOnlyParentID(t *testing.T) {
	token, err := GenerateRefreshToken("parent-123")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "parent-123", claims.ParentID)
	assert.Empty(t, claims.Email)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("gamze@example.com"))
	assert.True(t, IsValidEmail("First.Last+tag@sub.domain.co"))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}
