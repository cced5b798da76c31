package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ticket-server/internal/models"
)

// Token type tags. Access tokens carry no tag.
const (
	TypeRefresh = "refresh"
	TypeVerify  = "verify"
)

// Claims represents the signed token payload.
type Claims struct {
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrTokenInvalid
	}
	return id, nil
}

// Codec encodes and decodes signed, expiring tokens. It holds only the
// process-wide signing secret and is safe for concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given shared secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode builds and signs a token for the given subject. typ may be empty
// for access tokens. A non-positive subject means the caller handed us a
// broken user record, reported as models.ErrTokenEncoding.
func (c *Codec) Encode(subject int64, ttl time.Duration, typ string) (string, error) {
	if subject <= 0 {
		return "", models.ErrTokenEncoding
	}

	now := time.Now()
	claims := &Claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrTokenEncoding, err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of a token string. It returns
// models.ErrTokenExpired for expired tokens and models.ErrTokenInvalid for
// every other failure (bad signature, malformed payload, wrong algorithm).
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}
