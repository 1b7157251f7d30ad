package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/airsense/internal/auth"
)

func newTokenService() *auth.TokenService {
	return auth.NewTokenService(auth.TokenConfig{
		SigningKey: "test-signing-key",
		Issuer:     "https://api.airsense.test",
		Audience:   "airsense-api",
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTokenService()

	token, expiresAt, err := svc.Issue("ops@airsense", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@airsense", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenService_Verify_WrongKey(t *testing.T) {
	token, _, err := newTokenService().Issue("ops@airsense", "admin")
	require.NoError(t, err)

	other := auth.NewTokenService(auth.TokenConfig{
		SigningKey: "different-key",
		Issuer:     "https://api.airsense.test",
		Audience:   "airsense-api",
	})

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_Verify_WrongAudience(t *testing.T) {
	token, _, err := newTokenService().Issue("ops@airsense", "admin")
	require.NoError(t, err)

	other := auth.NewTokenService(auth.TokenConfig{
		SigningKey: "test-signing-key",
		Issuer:     "https://api.airsense.test",
		Audience:   "some-other-api",
	})

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	_, err := newTokenService().Verify("not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
