package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RandomPasswordHash returns the bcrypt hash of a random 32-byte value.
// Used for accounts that never authenticate locally (SSO provisioning,
// admin-created users): the column is filled but the credential is
// unusable because the plain value is discarded.
func RandomPasswordHash(cost int) (string, error) {
	raw, err := randomHex(32)
	if err != nil {
		return "", err
	}
	return HashPassword(raw, cost)
}
