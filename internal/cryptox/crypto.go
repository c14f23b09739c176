// Package cryptox derives and checks password verifiers for offline login.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of a freshly generated salt.
const SaltSize = 32

var ErrEmptySalt = errors.New("empty salt")

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier turns a derived key into the value stored on disk.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// HashPassword returns a verifier for password together with the random salt
// used to produce it.
func HashPassword(password string) (verifier, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key), salt
}

// VerifyPassword reports whether password matches verifier under salt.
func VerifyPassword(password string, verifier, salt []byte) (bool, error) {
	if len(salt) == 0 {
		return false, ErrEmptySalt
	}
	key := DeriveKey([]byte(password), salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1, nil
}
