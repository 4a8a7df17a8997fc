// Package identity resolves bearer tokens into actors. Tokens are HS256 JWTs
// whose subject is the actor id and whose role claim names the marketplace
// side the actor acts for.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultIssuer = "marketplace"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider implements ports.IdentityProvider with a shared secret.
type JWTProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTProvider(secret string) (*JWTProvider, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	return &JWTProvider{secret: []byte(secret), issuer: DefaultIssuer, now: time.Now}, nil
}

func (p *JWTProvider) ResolveActor(_ context.Context, raw string) (kernel.Actor, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return kernel.Actor{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return kernel.Actor{}, ports.ErrInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: subject: %v", ports.ErrInvalidToken, err)
	}
	role, err := kernel.RoleFromString(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	return actor, nil
}

// Issue signs a token for actor. The service itself only verifies tokens;
// Issue serves the token command and tests.
func (p *JWTProvider) Issue(actor kernel.Actor, ttl time.Duration) (string, error) {
	now := p.now()
	claims := &Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
