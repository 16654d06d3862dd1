// Package votecipher provides the authenticated symmetric encryption layer of
// timed-release voting: AES-256-GCM over vote payloads under a key derived
// from the ephemeral threshold scalar, plus a password-derived variant for
// at-rest protection of holder private keys.
//
// Wire forms: nonce||ciphertext||tag for scalar-keyed payloads and
// salt||nonce||ciphertext||tag for password-wrapped ones. Every decryption
// failure, whatever its cause, surfaces as the same ErrDecryptionFailed so no
// tag-vs-format oracle exists.
package votecipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
)

const (
	// KeySize is the AES-256 key length.
	KeySize = 32
	// NonceSize is the GCM nonce length.
	NonceSize = 12
)

// ErrDecryptionFailed is the single generic error for any failed decryption:
// wrong key, truncated input, or tampered ciphertext.
var ErrDecryptionFailed = errors.New("decryption failed")

// KeyFromScalar derives the fixed-width symmetric key from an ephemeral key
// scalar by hashing its minimal big-endian form. The scalar's raw bytes are
// never used directly: they can be shorter than the key length, and padding
// them is not the same as hashing.
func KeyFromScalar(k *big.Int) []byte {
	digest := sha256.Sum256(k.Bytes())
	return digest[:]
}

// Encrypt seals the plaintext under the given 32-byte key with AES-256-GCM
// and a fresh random nonce. The output is nonce||ciphertext||tag.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a nonce||ciphertext||tag payload. Any failure yields
// ErrDecryptionFailed.
func Decrypt(data, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(data) < NonceSize+aead.Overhead() {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length %d, expected %d", len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return aead, nil
}
