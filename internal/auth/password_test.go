// internal/auth/password_test.go
package auth_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/ngeukam/backendmaoni/internal/auth"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "s3cret-pass")

	ok, err := hasher.Verify("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong-pass", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashIsSalted(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	first, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordVerifyRejectsGarbage(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	for _, stored := range []string{
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=2,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=2,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=2,p=4$!!$a2V5",
	} {
		_, err := hasher.Verify("anything", stored)
		assert.Error(t, err, "stored value %q should not verify", stored)
	}
}

func TestPasswordVerifyHonoursEmbeddedParams(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	// A hash minted under lighter parameters keeps verifying after the
	// defaults move, because Verify reads the parameters from the hash.
	legacy := "$argon2id$v=19$m=16,t=1,p=1$" +
		"aGVsbG8tc2FsdC0xNg$" +
		legacyKey("s3cret-pass")

	ok, err := hasher.Verify("s3cret-pass", legacy)
	require.NoError(t, err)
	assert.True(t, ok)
}

func legacyKey(password string) string {
	key := argon2.IDKey([]byte(password), []byte("hello-salt-16"), 1, 16, 1, 32)
	return base64.RawStdEncoding.EncodeToString(key)
}
