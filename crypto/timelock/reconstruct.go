package timelock

import (
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto"
	"github.com/fshirazi710/timelock-node/types"
)

// RecoverKey reconstructs the ephemeral key scalar from at least threshold
// shares, using the blinding values produced by Setup. Exactly the first
// threshold shares supplied are used; the result does not depend on their
// order. Shares with an index beyond the threshold are corrected with their
// alpha value before interpolation.
//
// A tampered or substituted share does not fail here: it yields a different
// key with overwhelming probability, and the failure only surfaces as an
// authenticated-decryption error downstream. This layer offers no oracle on
// share correctness; VerifyShare is the explicit pre-check.
func RecoverKey(shares []Share, alphas []types.HexBytes, threshold int) (*big.Int, error) {
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientShares, len(shares), threshold)
	}

	chosen := shares[:threshold]
	indices := make([]int, threshold)
	for i, s := range chosen {
		indices[i] = s.Index
	}
	if err := checkDistinct(indices); err != nil {
		return nil, err
	}

	values := make([]*big.Int, threshold)
	for i, s := range chosen {
		if s.Index <= threshold {
			values[i] = new(big.Int).Mod(s.Value, order)
			continue
		}
		// Undo the blinding: value XOR alpha recovers the polynomial value
		// P(index). The alpha list is ordered by holder index starting at
		// threshold+1.
		alphaPos := s.Index - threshold - 1
		if alphaPos >= len(alphas) {
			return nil, fmt.Errorf("%w: holder index %d has no blinding value (alphas=%d)",
				ErrInvariant, s.Index, len(alphas))
		}
		unblinded, err := crypto.XORBytes(
			crypto.BigIntToFixedBytes(s.Value),
			alphas[alphaPos].LeftPad(crypto.ScalarWidth),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		values[i] = new(big.Int).Mod(new(big.Int).SetBytes(unblinded), order)
	}

	basis, err := lagrangeBasis(indices, 0, order)
	if err != nil {
		return nil, err
	}
	return interpolate(basis, values, order)
}
