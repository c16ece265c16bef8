package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", 7*24*time.Hour, 5*24*time.Hour)

	tok, err := svc.GenerateToken(42, KindCompany)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.SubjectID)
	assert.Equal(t, KindCompany, claims.Kind)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 5*24*time.Hour, ttl)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := New("secret", time.Hour, time.Hour)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateToken(1, KindUser)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, err := New("one", time.Hour, time.Hour).GenerateToken(1, KindUser)
	require.NoError(t, err)

	_, err = New("two", time.Hour, time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_UnknownKind(t *testing.T) {
	claims := Claims{
		SubjectID: 1,
		Kind:      "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Hour, time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken_UnknownKind(t *testing.T) {
	_, err := New("secret", time.Hour, time.Hour).GenerateToken(1, "admin")
	assert.Error(t, err)
}
