package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradequote/quoting-api/internal/config"
)

func testValidator() *JWTValidator {
	return NewJWTValidator(&config.AuthConfig{
		SigningSecret: "test-signing-secret",
		Issuer:        "tradequote",
	})
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := testValidator()
	user := &UserContext{
		UserID:      uuid.New(),
		DisplayName: "Sam Taylor",
		Email:       "sam@example.com",
	}

	token, err := v.IssueToken(user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)
	assert.Equal(t, user.DisplayName, got.DisplayName)
	assert.Equal(t, user.Email, got.Email)
}

func TestJWTValidator_Expired(t *testing.T) {
	v := testValidator()
	user := &UserContext{UserID: uuid.New()}

	token, err := v.IssueToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = v.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	v := testValidator()
	user := &UserContext{UserID: uuid.New()}

	token, err := v.IssueToken(user, time.Hour)
	require.NoError(t, err)

	other := NewJWTValidator(&config.AuthConfig{
		SigningSecret: "a-different-secret",
		Issuer:        "tradequote",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_WrongIssuer(t *testing.T) {
	issuing := NewJWTValidator(&config.AuthConfig{
		SigningSecret: "test-signing-secret",
		Issuer:        "someone-else",
	})
	token, err := issuing.IssueToken(&UserContext{UserID: uuid.New()}, time.Hour)
	require.NoError(t, err)

	_, err = testValidator().ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_MissingSubject(t *testing.T) {
	v := testValidator()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tradequote",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-secret"))
	require.NoError(t, err)

	_, err = v.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_RejectsUnsignedAlg(t *testing.T) {
	v := testValidator()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "tradequote",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
