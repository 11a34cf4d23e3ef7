//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"save-serve/internal/domain/user"
	"save-serve/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	svc := jwt.NewService("s3cret", time.Hour, jwt.WithIssuer("accounts"))
	id := uuid.New()

	token, err := svc.GenerateToken(id, user.RoleOrganization)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "organization", claims.Role)
	assert.Equal(t, "accounts", claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	verifier := jwt.NewService("s3cret", time.Hour, jwt.WithIssuer("accounts"))
	id := uuid.New()

	mint := func(t *testing.T, svc *jwt.Service) string {
		t.Helper()
		token, err := svc.GenerateToken(id, user.RoleDonor)
		require.NoError(t, err)
		return token
	}

	t.Run("expired", func(t *testing.T) {
		token := mint(t, jwt.NewService("s3cret", -time.Hour, jwt.WithIssuer("accounts")))
		_, err := verifier.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		token := mint(t, jwt.NewService("s3cret", time.Hour, jwt.WithIssuer("elsewhere")))
		_, err := verifier.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		token := mint(t, jwt.NewService("not-it", time.Hour, jwt.WithIssuer("accounts")))
		_, err := verifier.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
			"sub": id.String(), "role": "admin", "iss": "accounts",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = verifier.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
			"sub": "service-account", "role": "admin", "iss": "accounts",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		claims, err := verifier.ValidateToken(token)
		require.NoError(t, err)
		_, err = claims.UserID()
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
