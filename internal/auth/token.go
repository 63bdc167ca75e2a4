package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// Codec errors. Parse failures collapse into these three kinds; no further
// detail ever reaches a client.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformed        = errors.New("token malformed")
)

// TokenCodec signs and verifies compact HS256 claim sets carrying a username
// and a single role.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec around the shared secret. The TTL is fixed at
// construction and embedded in every issued token as an explicit expiry claim.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload: exactly two custom fields plus the
// registered issued-at/expiry timestamps.
type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Encode builds and signs a token for the given identity. The expiry claim is
// set to issuance time plus the configured TTL.
func (c *TokenCodec) Encode(username string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies the signature and expiry together and returns the claims.
// This is the validation entry point for request middleware.
func (c *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	claims, err := c.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if expired(claims, time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// DecodeUsername verifies the signature and extracts the username claim.
// Expiry is not consulted; callers pair this with IsExpired.
func (c *TokenCodec) DecodeUsername(tokenStr string) (string, error) {
	claims, err := c.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// DecodeRole verifies the signature and extracts the role claim.
func (c *TokenCodec) DecodeRole(tokenStr string) (domain.Role, error) {
	claims, err := c.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

// IsExpired reports whether the token's expiry lies strictly before now. A
// token evaluated exactly at its expiry instant is still valid.
func (c *TokenCodec) IsExpired(tokenStr string) (bool, error) {
	claims, err := c.parse(tokenStr)
	if err != nil {
		return false, err
	}
	return expired(claims, time.Now()), nil
}

func (c *TokenCodec) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		default:
			return nil, ErrInvalidSignature
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

func expired(claims *Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(now)
}
