package auth

import "context"

// Claims is the identity a verified token resolves to. The values are trusted
// for the lifetime of the request; no user lookup happens on verification.
type Claims struct {
	UserID string
	Email  string
}

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenVerifier checks a presented token's signature and expiry and returns
// its embedded claims. Failures surface as ErrInvalidToken.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
