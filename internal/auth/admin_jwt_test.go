package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAdminToken(t *testing.T) {
	token, err := GenerateAdminToken("operator@cabinreserve.local", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAdminToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "operator@cabinreserve.local", claims.Subject)
}

func TestValidateAdminToken_WrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("operator", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateAdminToken(token, "wrong-secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAdminToken_Expired(t *testing.T) {
	token, err := GenerateAdminToken("operator", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateAdminToken(token, "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAdminToken_Garbage(t *testing.T) {
	_, err := ValidateAdminToken("not-a-jwt", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
