package identity

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef-test-secret"

func TestJWTProvider_RoundTrip(t *testing.T) {
	provider, err := NewJWTProvider(secret)
	require.NoError(t, err)

	for _, role := range kernel.Roles() {
		t.Run(role.String(), func(t *testing.T) {
			actor := kernel.MustActor(kernel.NewUUID(), role)
			token, err := provider.Issue(actor, time.Hour)
			require.NoError(t, err)

			resolved, err := provider.ResolveActor(context.Background(), token)
			require.NoError(t, err)
			assert.True(t, actor.ID().IsEqual(resolved.ID()))
			assert.Equal(t, role, resolved.Role())
		})
	}
}

func TestJWTProvider_Rejects(t *testing.T) {
	provider, err := NewJWTProvider(secret)
	require.NoError(t, err)
	other, err := NewJWTProvider("another-secret-of-enough-length")
	require.NoError(t, err)

	admin := kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	forged, err := other.Issue(admin, time.Hour)
	require.NoError(t, err)
	expired, err := provider.Issue(admin, -time.Minute)
	require.NoError(t, err)

	sign := func(claims *Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	registered := func(sub string) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", forged},
		{"expired", expired},
		{"unknown role", sign(&Claims{Role: "auditor", RegisteredClaims: registered(kernel.NewUUID().String())})},
		{"bad subject", sign(&Claims{Role: "admin", RegisteredClaims: registered("bob")})},
		{"no expiry", sign(&Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
			Subject: kernel.NewUUID().String(),
			Issuer:  DefaultIssuer,
		}})},
		{"foreign issuer", sign(&Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
			Subject:   kernel.NewUUID().String(),
			Issuer:    "elsewhere",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := provider.ResolveActor(context.Background(), tt.token)
			assert.ErrorIs(t, err, ports.ErrInvalidToken)
		})
	}
}

func TestNewJWTProvider_ShortSecret(t *testing.T) {
	_, err := NewJWTProvider("short")
	assert.Error(t, err)
}
