// internal/auth/password.go
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Stored hashes follow the reference argon2id encoding,
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>,
// with both binary fields in unpadded standard base64. The parameters
// travel inside the hash, so they can be raised later without breaking
// verification of existing rows.
const (
	argonMemoryKiB   = 64 * 1024
	argonIterations  = 2
	argonParallelism = 4
	argonSaltLen     = 16
	argonKeyLen      = 32
)

var errMalformedHash = errors.New("malformed argon2id hash")

// PasswordHasher derives and checks argon2id password hashes.
type PasswordHasher struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		memoryKiB:   argonMemoryKiB,
		iterations:  argonIterations,
		parallelism: argonParallelism,
	}
}

// Hash derives an encoded hash from the password under a fresh random salt.
func (p *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.iterations, p.memoryKiB, p.parallelism, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memoryKiB, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether the password matches the encoded hash, re-deriving
// the key under the parameters the hash itself carries. The comparison is
// constant time. An error means the stored value is not a usable hash, not
// that the password was wrong.
func (p *PasswordHasher) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, errMalformedHash
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var memoryKiB, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return false, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: bad salt", errMalformedHash)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: bad key", errMalformedHash)
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
