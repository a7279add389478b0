package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for API token secrets
	"crypto/subtle" // constant-time comparison of token hashes
	"encoding/hex"  // hex encoding functions
	"errors"
	"strconv"
	"strings"
)

// APITokenSecret is the random half of a bearer credential. The client
// receives the composite plaintext "<id>|<secret>"; the database stores
// only the SHA-256 hash of the secret.
type APITokenSecret struct {
	Raw  string // raw secret returned to the client (inside the composite)
	Hash string // SHA-256 hex digest persisted in access_tokens.token_hash
}

// NewAPITokenSecret returns a cryptographically secure random secret
// (40 hex characters) together with its storable hash.
func NewAPITokenSecret() (APITokenSecret, error) {
	raw, err := randomHex(20) // 20 bytes -> 40 hex chars
	if err != nil {
		return APITokenSecret{}, err
	}
	return APITokenSecret{Raw: raw, Hash: HashTokenSecret(raw)}, nil
}

// HashTokenSecret returns the SHA-256 hash of a raw token secret as a
// hex string. Storing only the hash prevents stolen database rows from
// being replayed as bearer credentials.
func HashTokenSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ComposeToken builds the plaintext bearer credential from a token row
// id and the raw secret.
func ComposeToken(id uint64, rawSecret string) string {
	return strconv.FormatUint(id, 10) + "|" + rawSecret
}

var ErrMalformedToken = errors.New("malformed token")

// SplitToken parses a plaintext bearer credential back into its row id
// and raw secret.
func SplitToken(plain string) (uint64, string, error) {
	idPart, secret, ok := strings.Cut(plain, "|")
	if !ok || secret == "" {
		return 0, "", ErrMalformedToken
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return 0, "", ErrMalformedToken
	}
	return id, secret, nil
}

// EqualHashes compares two hex digests in constant time.
func EqualHashes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
