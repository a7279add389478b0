package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signSSOToken(t *testing.T, key *rsa.PrivateKey, email string, exp time.Time) string {
	t.Helper()
	claims := SSOClaims{
		Email:    email,
		Username: "jdoe",
		Name:     "Jane Doe",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifySSOToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := signSSOToken(t, key, "jane@example.com", time.Now().Add(time.Hour))
	claims, err := VerifySSOToken(&key.PublicKey, token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "Jane Doe", claims.Name)
}

func TestVerifySSOTokenExpired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := signSSOToken(t, key, "jane@example.com", time.Now().Add(-time.Hour))
	_, err = VerifySSOToken(&key.PublicKey, token)
	assert.ErrorIs(t, err, ErrSSOTokenExpired)
}

func TestVerifySSOTokenWrongKey(t *testing.T) {
	signing, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := signSSOToken(t, signing, "jane@example.com", time.Now().Add(time.Hour))
	_, err = VerifySSOToken(&other.PublicKey, token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSSOTokenExpired)
}

func TestVerifySSOTokenRejectsHMAC(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	// A token signed with a symmetric algorithm must not pass, even if
	// an attacker picked the HMAC secret deliberately.
	claims := jwt.MapClaims{"email": "jane@example.com", "exp": time.Now().Add(time.Hour).Unix()}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("guessable"))
	require.NoError(t, err)

	_, err = VerifySSOToken(&key.PublicKey, forged)
	assert.Error(t, err)
}

func TestVerifySSOTokenMissingEmail(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := signSSOToken(t, key, "", time.Now().Add(time.Hour))
	_, err = VerifySSOToken(&key.PublicKey, token)
	assert.Error(t, err)
}
