package bls

import (
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/types"
)

// KeyPair holds a holder's private scalar and the matching G1 public key in
// compressed form. The private scalar is always in [1, Order).
type KeyPair struct {
	PrivateKey *big.Int
	PublicKey  types.HexBytes
}

// GenerateKeyPair generates a new BLS12-381 keypair. The private scalar is
// drawn uniformly from the scalar field and restricted to be nonzero.
func GenerateKeyPair() (*KeyPair, error) {
	sk, err := RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key scalar: %w", err)
	}
	if sk.Sign() == 0 {
		sk = big.NewInt(1) // avoid zero private keys
	}
	return &KeyPair{
		PrivateKey: sk,
		PublicKey:  PublicFromPrivate(sk),
	}, nil
}

// PublicFromPrivate derives the compressed G1 public key from a private
// scalar. Exposed standalone for key recovery paths.
func PublicFromPrivate(sk *big.Int) types.HexBytes {
	return ScalarMulG1(sk)
}
