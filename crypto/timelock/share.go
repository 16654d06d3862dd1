package timelock

import (
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/types"
)

// Share is a holder's decryption contribution: the 1-based holder index unique
// within a vote, and the point-derived scalar value. At most one share per
// holder per vote is ever accepted by the coordinating layer.
type Share struct {
	Index int
	Value *big.Int
}

// ComputeShare multiplies the published g1 commitment by the holder's private
// scalar and returns the compressed result. By commutativity this equals the
// value pk^r the encryptor derived during setup. It fails if the commitment
// does not deserialize to a valid point.
func ComputeShare(privateKey *big.Int, g1r types.HexBytes) (types.HexBytes, error) {
	share, err := bls.PKTimesScalar(g1r, privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid g1 commitment: %w", err)
	}
	return share, nil
}

// VerifyShare checks e(share, G2) == e(pk, g2r) and reports whether the share
// was honestly computed from the private key behind pk. It is a total
// predicate: malformed input of any kind yields false, never an error, so it
// can gate acceptance of untrusted submissions directly.
func VerifyShare(share, publicKey, g2r types.HexBytes) bool {
	ok, err := bls.PairingEq(share, bls.G2Generator(), publicKey, g2r)
	if err != nil {
		return false
	}
	return ok
}

// ShareScalar converts a published share point to the scalar form consumed by
// RecoverKey. It fails if the share is not a valid G1 point.
func ShareScalar(share types.HexBytes) (*big.Int, error) {
	if _, err := bls.UnmarshalG1(share); err != nil {
		return nil, fmt.Errorf("invalid share point: %w", err)
	}
	return bls.PointToScalar(share), nil
}
