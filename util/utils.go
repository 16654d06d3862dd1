package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomBytes generates a random byte slice of length n.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

// RandomHex generates a random hex string of length n bytes.
func RandomHex(n int) string {
	return fmt.Sprintf("%x", RandomBytes(n))
}

// RandomBigInt generates a random big integer between min and max.
func RandomBigInt(min, max *big.Int) *big.Int {
	num, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		panic(err)
	}
	return new(big.Int).Add(num, min)
}
