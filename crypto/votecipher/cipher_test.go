package votecipher

import (
	"bytes"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	c := qt.New(t)

	key := KeyFromScalar(big.NewInt(123456789))
	c.Assert(key, qt.HasLen, KeySize)

	plaintext := []byte("vote: option-2")
	sealed, err := Encrypt(plaintext, key)
	c.Assert(err, qt.IsNil)
	c.Assert(len(sealed) > len(plaintext)+NonceSize, qt.IsTrue)

	opened, err := Decrypt(sealed, key)
	c.Assert(err, qt.IsNil)
	c.Assert(opened, qt.DeepEquals, plaintext)

	// A fresh nonce per call means identical inputs never repeat on the wire.
	sealed2, err := Encrypt(plaintext, key)
	c.Assert(err, qt.IsNil)
	c.Assert(bytes.Equal(sealed, sealed2), qt.IsFalse)
}

func TestDecryptFailures(t *testing.T) {
	c := qt.New(t)

	key := KeyFromScalar(big.NewInt(1))
	sealed, err := Encrypt([]byte("payload"), key)
	c.Assert(err, qt.IsNil)

	// Wrong key.
	_, err = Decrypt(sealed, KeyFromScalar(big.NewInt(2)))
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)

	// Flipped ciphertext byte.
	tampered := bytes.Clone(sealed)
	tampered[NonceSize] ^= 0x01
	_, err = Decrypt(tampered, key)
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)

	// Truncated payload.
	_, err = Decrypt(sealed[:NonceSize+3], key)
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)
	_, err = Decrypt(nil, key)
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)
}

func TestInvalidKeyLength(t *testing.T) {
	c := qt.New(t)

	_, err := Encrypt([]byte("x"), []byte("short"))
	c.Assert(err, qt.IsNotNil)
	_, err = Decrypt(make([]byte, 64), []byte("short"))
	c.Assert(err, qt.IsNotNil)
}

func TestKeyFromScalarDistinct(t *testing.T) {
	c := qt.New(t)

	k1 := KeyFromScalar(big.NewInt(10))
	k2 := KeyFromScalar(big.NewInt(11))
	c.Assert(bytes.Equal(k1, k2), qt.IsFalse)
	// Deterministic for the same scalar.
	c.Assert(KeyFromScalar(big.NewInt(10)), qt.DeepEquals, k1)
}

func TestPasswordRoundtrip(t *testing.T) {
	c := qt.New(t)

	secret := []byte("holder private key bytes")
	sealed, err := EncryptWithPassword(secret, "correct horse")
	c.Assert(err, qt.IsNil)

	opened, err := DecryptWithPassword(sealed, "correct horse")
	c.Assert(err, qt.IsNil)
	c.Assert(opened, qt.DeepEquals, secret)

	_, err = DecryptWithPassword(sealed, "battery staple")
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)

	_, err = DecryptWithPassword(sealed[:SaltSize-1], "correct horse")
	c.Assert(err, qt.ErrorIs, ErrDecryptionFailed)

	// Random salt: same inputs, different wire bytes.
	sealed2, err := EncryptWithPassword(secret, "correct horse")
	c.Assert(err, qt.IsNil)
	c.Assert(bytes.Equal(sealed, sealed2), qt.IsFalse)
}
