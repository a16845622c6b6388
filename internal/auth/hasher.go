// ABOUTME: Password digest schemes.
// ABOUTME: sha256 (unsalted hex, compatible with existing rows) is the default; bcrypt is opt-in.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher turns passwords into stored digests and checks them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) bool
	// Deterministic hashers allow matching email and digest in one lookup.
	Deterministic() bool
}

// Hash returns the lowercase hex SHA-256 digest of password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// SHA256Hasher stores unsalted SHA-256 hex digests.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return Hash(password), nil
}

func (SHA256Hasher) Verify(digest, password string) bool {
	return digest == Hash(password)
}

func (SHA256Hasher) Deterministic() bool { return true }

// BcryptHasher stores salted bcrypt digests. Rows written by SHA256Hasher
// cannot be verified with it.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func (BcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

func (BcryptHasher) Deterministic() bool { return false }

// NewHasher returns the hasher for a configured scheme name.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
