package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "secret1"))
	assert.Error(t, CheckPassword(hash, "secret2"))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.NoError(t, CheckPassword(h1, "secret1"))
	assert.NoError(t, CheckPassword(h2, "secret1"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	assert.Error(t, CheckPassword("not-a-bcrypt-hash", "whatever"))
	assert.Error(t, CheckPassword("", "whatever"))
}

// Plain bcrypt ignores everything past byte 72, so two long passwords with
// a shared prefix would collide. The pre-hash step must keep them distinct.
func TestHashPassword_NoTruncationAt72Bytes(t *testing.T) {
	prefix := strings.Repeat("a", 72)
	hash, err := HashPassword(prefix + "tail-one")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, prefix+"tail-one"))
	assert.Error(t, CheckPassword(hash, prefix+"tail-two"))
}
