package votecipher

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/fshirazi710/timelock-node/util"
)

const (
	// SaltSize is the length of the random PBKDF2 salt prepended to
	// password-wrapped payloads.
	SaltSize = 16
	// pbkdf2Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	pbkdf2Iterations = 100_000
)

// EncryptWithPassword seals the plaintext under a key derived from the
// password with PBKDF2-HMAC-SHA256 and a fresh random salt. The output is
// salt||nonce||ciphertext||tag, so two calls with identical inputs never
// produce the same bytes.
func EncryptWithPassword(plaintext []byte, password string) ([]byte, error) {
	salt := util.RandomBytes(SaltSize)
	key := deriveKey(password, salt)
	sealed, err := Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}
	return append(salt, sealed...), nil
}

// DecryptWithPassword opens a salt||nonce||ciphertext||tag payload. A wrong
// password or tampered payload yields ErrDecryptionFailed.
func DecryptWithPassword(data []byte, password string) ([]byte, error) {
	if len(data) < SaltSize {
		return nil, ErrDecryptionFailed
	}
	key := deriveKey(password, data[:SaltSize])
	return Decrypt(data[SaltSize:], key)
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, KeySize, sha256.New)
}
