package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ndanilchenko/tasktrack/pkg/auth"
)

// Generator issues and verifies HS256 bearer tokens carrying {id, email, exp}.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims embeds the standard claims plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Email: user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify checks signature, expiry and issuer. A token stays valid until its
// expiry; there is no revocation list.
func (g *Generator) Verify(ctx context.Context, tokenStr string) (auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, auth.ErrInvalidToken
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if g.issuer != "" && claims.Issuer != g.issuer {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: claims.Subject, Email: claims.Email}, nil
}
