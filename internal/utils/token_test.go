package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPITokenSecret(t *testing.T) {
	s, err := NewAPITokenSecret()
	require.NoError(t, err)
	assert.Len(t, s.Raw, 40)
	assert.Equal(t, HashTokenSecret(s.Raw), s.Hash)

	// Secrets are random per call.
	s2, err := NewAPITokenSecret()
	require.NoError(t, err)
	assert.NotEqual(t, s.Raw, s2.Raw)
}

func TestComposeAndSplitToken(t *testing.T) {
	plain := ComposeToken(42, "deadbeef")
	assert.Equal(t, "42|deadbeef", plain)

	id, secret, err := SplitToken(plain)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "deadbeef", secret)
}

func TestSplitTokenMalformed(t *testing.T) {
	cases := []string{"", "noseparator", "42|", "|secret", "abc|secret", "0|secret"}
	for _, tc := range cases {
		_, _, err := SplitToken(tc)
		assert.ErrorIs(t, err, ErrMalformedToken, "input %q", tc)
	}
}

func TestEqualHashes(t *testing.T) {
	h := HashTokenSecret("x")
	assert.True(t, EqualHashes(h, HashTokenSecret("x")))
	assert.False(t, EqualHashes(h, HashTokenSecret("y")))
}
