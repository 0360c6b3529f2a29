package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const testSecret = "secreto-de-prueba"

func TestGenerateYParse_RoundTrip(t *testing.T) {
	token, err := Generate(testSecret, "u1", "co1", "manager", "ventory", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: "u1", CompanyID: "co1", Role: "manager"}, sess)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "co1", "admin", "ventory", 60)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(testSecret, "u1", "co1", "admin", "ventory", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate(testSecret, "u1", "co1", "admin", "ventory", -5)
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.ErrorIs(t, err, jwtlib.ErrTokenExpired)
}

func TestParse_MetodoDeFirmaInesperado(t *testing.T) {
	// Token sin firma (alg=none): debe rechazarse aunque los claims sean válidos.
	claims := accessClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
		CompanyID: "co1",
		Role:      "admin",
	}
	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_BasuraNoEsToken(t *testing.T) {
	_, err := Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}
