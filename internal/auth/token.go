// Package auth implements bearer-token issuing/verification and
// password-credential login for the back office.
package auth

import (
	"backoffice/pkg/serrors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenServiceOptions carries the token validation parameters. They are read
// once at startup and fixed for the process lifetime; there is no key
// rotation.
type TokenServiceOptions struct {
	// Issuer is the required "iss" claim.
	Issuer string
	// Audience is the required "aud" claim.
	Audience string
	// SecretKey is the symmetric HS256 signing key.
	SecretKey string
	// TTL is the lifetime of issued tokens.
	TTL time.Duration
}

// TokenService issues and verifies HS256 bearer tokens. Verification requires
// all of: signature, issuer, audience and lifetime.
type TokenService struct {
	issuer   string
	audience string
	key      []byte
	ttl      time.Duration
}

// NewTokenService validates the options and returns a TokenService. A missing
// secret key fails here rather than at the first signing.
func NewTokenService(opts TokenServiceOptions) (*TokenService, error) {
	if opts.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is not configured")
	}
	if opts.Issuer == "" || opts.Audience == "" {
		return nil, fmt.Errorf("jwt issuer and audience must be configured")
	}

	return &TokenService{
		issuer:   opts.Issuer,
		audience: opts.Audience,
		key:      []byte(opts.SecretKey),
		ttl:      opts.TTL,
	}, nil
}

// Issue signs a token for the given subject with the configured issuer,
// audience and TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token and enforces signature, issuer, audience and
// lifetime. Any failure is reported as an unauthorized semantic error.
func (s *TokenService) Verify(tokenStr string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	return &claims, nil
}
