package utils

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SSOClaims is the payload of an externally issued SSO assertion. The
// issuer signs it with RS256; we hold only the public half of the key.
type SSOClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// ErrSSOTokenExpired reports an assertion whose exp is in the past.
// Callers surface this case differently from other verification
// failures (redirect with a message instead of a silent redirect).
var ErrSSOTokenExpired = errors.New("sso token expired")

// ParseSSOPublicKey decodes an RSA public key from PEM bytes.
func ParseSSOPublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	return jwt.ParseRSAPublicKeyFromPEM(pemBytes)
}

// VerifySSOToken checks the signature and expiry of an SSO assertion
// and returns its claims. Any tampering, wrong algorithm or missing
// email collapses into an error; an expired but otherwise valid token
// returns ErrSSOTokenExpired.
func VerifySSOToken(key *rsa.PublicKey, token string) (*SSOClaims, error) {
	claims := &SSOClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSSOTokenExpired
		}
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid sso token")
	}
	if claims.Email == "" {
		return nil, errors.New("sso token missing email")
	}
	return claims, nil
}
