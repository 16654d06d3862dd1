// Package timelock implements the threshold protocol of timed-release voting:
// an encryptor derives an ephemeral symmetric key bound to two public
// commitment points, each designated holder can later contribute a publicly
// verifiable share, and any threshold-sized subset of shares recovers the key.
//
// The construction treats the first t public-key-derived values S_i =
// toScalar(pk_i^r) as evaluations of a degree-(t-1) polynomial at x = i, with
// the ephemeral key k = P(0). Holders beyond the threshold receive a blinding
// value alpha_j = bytes(P(j)) XOR bytes(S_j) so their contribution can be
// corrected back onto the same polynomial. Holders never learn r; a holder's
// share g1r^sk equals pk^r by commutativity of scalar multiplication.
package timelock

import (
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto"
	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/types"
)

// SetupResult is the output of a threshold setup: the ephemeral key scalar
// (known only to the encryptor), the two commitment points for publication,
// and the ordered blinding values for holders t+1..n. It is created once per
// vote and never mutated.
type SetupResult struct {
	Key    *big.Int
	G1R    types.HexBytes
	G2R    types.HexBytes
	Alphas []types.HexBytes
}

// Setup derives an ephemeral symmetric key from the ordered, 1-indexed holder
// public keys and the session threshold. It requires 2 <= threshold <=
// len(pubKeys), and that every public key deserializes to a valid G1 point.
func Setup(pubKeys []types.HexBytes, threshold int) (*SetupResult, error) {
	n := len(pubKeys)
	if threshold < 2 || threshold > n {
		return nil, fmt.Errorf("%w: t=%d n=%d", ErrInvalidThreshold, threshold, n)
	}

	r, err := bls.RandomScalar()
	if err != nil {
		return nil, fmt.Errorf("failed to draw setup randomness: %w", err)
	}

	// S_i = toScalar(pk_i^r) for the first t holders: the base points of the
	// implied polynomial.
	baseIndices := make([]int, threshold)
	baseValues := make([]*big.Int, threshold)
	for i := 1; i <= threshold; i++ {
		point, err := bls.PKTimesScalar(pubKeys[i-1], r)
		if err != nil {
			return nil, fmt.Errorf("holder %d: %w", i, err)
		}
		baseIndices[i-1] = i
		baseValues[i-1] = bls.PointToScalar(point)
	}

	// k = P(0) by Lagrange interpolation over the base points.
	basis, err := lagrangeBasis(baseIndices, 0, order)
	if err != nil {
		return nil, err
	}
	key, err := interpolate(basis, baseValues, order)
	if err != nil {
		return nil, err
	}

	// For every holder beyond the threshold, blind the polynomial value P(j)
	// with the holder's own point-derived scalar. The XOR operands are padded
	// to a fixed width so leading-zero truncation can never desynchronize the
	// two byte strings.
	alphas := make([]types.HexBytes, 0, n-threshold)
	for j := threshold + 1; j <= n; j++ {
		basisAtJ, err := lagrangeBasis(baseIndices, j, order)
		if err != nil {
			return nil, err
		}
		pAtJ, err := interpolate(basisAtJ, baseValues, order)
		if err != nil {
			return nil, err
		}
		point, err := bls.PKTimesScalar(pubKeys[j-1], r)
		if err != nil {
			return nil, fmt.Errorf("holder %d: %w", j, err)
		}
		sj := bls.PointToScalar(point)
		alpha, err := crypto.XORBytes(crypto.BigIntToFixedBytes(pAtJ), crypto.BigIntToFixedBytes(sj))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		alphas = append(alphas, alpha)
	}

	return &SetupResult{
		Key:    key,
		G1R:    bls.ScalarMulG1(r),
		G2R:    bls.ScalarMulG2(r),
		Alphas: alphas,
	}, nil
}
