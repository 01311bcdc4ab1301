package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstdesk/internal/auth"
	"gstdesk/internal/config"
	"gstdesk/internal/domain"
)

var jwtCfg = config.JWTConfig{Enabled: true, Secret: "test-secret", Issuer: "gstdesk"}

func TestHMACVerifier_RoundTrip(t *testing.T) {
	v := auth.NewHMACVerifier(jwtCfg)
	bc := domain.BusinessContext{BusinessID: uuid.New(), UserID: uuid.New(), Email: "owner@acme.in"}

	token, err := v.Issue(bc, time.Hour)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, bc, claims.BusinessContext())
	assert.Equal(t, "gstdesk", claims.Issuer)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	v := auth.NewHMACVerifier(jwtCfg)
	bc := domain.BusinessContext{BusinessID: uuid.New(), UserID: uuid.New()}

	t.Run("expired", func(t *testing.T) {
		token, err := v.Issue(bc, -time.Minute)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := auth.NewHMACVerifier(config.JWTConfig{Secret: "other", Issuer: "gstdesk"})
		token, err := other.Issue(bc, time.Hour)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		other := auth.NewHMACVerifier(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
		token, err := other.Issue(bc, time.Hour)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("no_business", func(t *testing.T) {
		token, err := v.Issue(domain.BusinessContext{UserID: uuid.New()}, time.Hour)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong_algorithm", func(t *testing.T) {
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "gstdesk",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			BusinessID: uuid.New(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = v.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
