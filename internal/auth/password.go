package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// prehash digests the password with SHA-256 and base64-encodes the result so
// bcrypt always sees a fixed 44-byte input. Plain bcrypt silently truncates
// anything past 72 bytes; the digest step removes that pitfall.
func prehash(pw string) []byte {
	sum := sha256.Sum256([]byte(pw))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// HashPassword hashes a plaintext password with a per-call random salt.
// The output is self-describing (algorithm parameters are embedded).
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword compares a stored hash with a candidate plaintext password.
// A malformed hash is reported as a mismatch, never as a panic.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(pw))
}
