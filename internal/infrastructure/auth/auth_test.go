package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"garage/internal/shared/authorization"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := h.Hash("s3cret-password")
	require.NoError(t, err)

	assert.NoError(t, h.Verify("s3cret-password", hash))
	assert.ErrorIs(t, h.Verify("wrong-password", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("s3cret-password", "not-a-hash"), ErrPasswordMismatch)
}

func TestNewBcryptPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptPasswordHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 30)
	center := uint(3)

	tok, err := svc.Generate(42, authorization.RoleManager, &center)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), tok.ExpiresIn)

	claims, err := svc.Verify(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleManager, claims.Role)
	require.NotNil(t, claims.ServiceCenterID)
	assert.Equal(t, center, *claims.ServiceCenterID)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", 30)

	t.Run("other secret", func(t *testing.T) {
		tok, err := NewJWTService("other", 30).Generate(1, authorization.RoleAdmin, nil)
		require.NoError(t, err)
		_, err = svc.Verify(tok.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: 1, Role: authorization.RoleAdmin}
		claims.Issuer = issuer
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
