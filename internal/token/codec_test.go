package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-server/internal/models"
)

const testSecret = "unit-test-secret"

func TestEncodeDecodeRoundtrip(t *testing.T) {
	codec := NewCodec(testSecret)
	before := time.Now()

	tokenString, err := codec.Encode(42, 2*time.Hour, "")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := codec.Decode(tokenString)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Empty(t, claims.TokenType, "access tokens must not carry a type tag")
	assert.True(t, claims.ExpiresAt.Time.After(before), "expiry must be in the future")
}

func TestEncodeTypeTag(t *testing.T) {
	codec := NewCodec(testSecret)

	refresh, err := codec.Encode(7, time.Hour, TypeRefresh)
	require.NoError(t, err)
	claims, err := codec.Decode(refresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)

	verify, err := codec.Encode(7, time.Hour, TypeVerify)
	require.NoError(t, err)
	claims, err = codec.Decode(verify)
	require.NoError(t, err)
	assert.Equal(t, TypeVerify, claims.TokenType)
}

func TestEncodeBadSubject(t *testing.T) {
	codec := NewCodec(testSecret)

	_, err := codec.Encode(0, time.Hour, "")
	assert.ErrorIs(t, err, models.ErrTokenEncoding)

	_, err = codec.Encode(-5, time.Hour, TypeRefresh)
	assert.ErrorIs(t, err, models.ErrTokenEncoding)
}

func TestDecodeExpired(t *testing.T) {
	codec := NewCodec(testSecret)

	expired, err := codec.Encode(1, -time.Second, "")
	require.NoError(t, err)

	_, err = codec.Decode(expired)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestDecodeInvalid(t *testing.T) {
	codec := NewCodec(testSecret)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "horrible_bad_token",
		"truncated": "eyJhbGciOiJIUzI1NiJ9.e30",
	}
	for name, tokenString := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(tokenString)
			assert.ErrorIs(t, err, models.ErrTokenInvalid)
		})
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	other := NewCodec("another-secret")
	tokenString, err := other.Encode(1, time.Hour, "")
	require.NoError(t, err)

	_, err = NewCodec(testSecret).Decode(tokenString)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestDecodeRejectsNonHMAC(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewCodec(testSecret).Decode(unsigned)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}
