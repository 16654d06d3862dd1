package timelock

import (
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto/bls"
)

// lagrangeBasis computes the Lagrange basis coefficients L_i(x) for the given
// holder indices, evaluated at x, over the scalar field. Reconstruction always
// evaluates at x = 0; Setup additionally evaluates at x = j to derive the
// blinding values for holders beyond the threshold.
func lagrangeBasis(indices []int, x int, order *big.Int) ([]*big.Int, error) {
	basis := make([]*big.Int, 0, len(indices))
	xBig := big.NewInt(int64(x))
	for _, i := range indices {
		numerator := big.NewInt(1)
		denominator := big.NewInt(1)
		for _, j := range indices {
			if i == j {
				continue
			}
			// numerator *= (x - j) mod order
			term := new(big.Int).Sub(xBig, big.NewInt(int64(j)))
			term.Mod(term, order)
			numerator.Mul(numerator, term)
			numerator.Mod(numerator, order)

			// denominator *= (i - j) mod order
			term = big.NewInt(int64(i - j))
			term.Mod(term, order)
			denominator.Mul(denominator, term)
			denominator.Mod(denominator, order)
		}
		denominatorInv, err := modInverse(denominator, order)
		if err != nil {
			return nil, err
		}
		coeff := new(big.Int).Mul(numerator, denominatorInv)
		coeff.Mod(coeff, order)
		basis = append(basis, coeff)
	}
	return basis, nil
}

// modInverse computes the modular inverse of a modulo m via the extended
// Euclidean algorithm. A missing inverse is unreachable for a prime modulus
// and distinct indices, so it is reported as an invariant violation rather
// than a routine error.
func modInverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, fmt.Errorf("%w: no modular inverse for %s", ErrInvariant, a.String())
	}
	return inv, nil
}

// interpolate evaluates Σ values[i]·basis[i] mod order. Both slices must have
// the same length.
func interpolate(basis, values []*big.Int, order *big.Int) (*big.Int, error) {
	if len(basis) != len(values) {
		return nil, fmt.Errorf("%w: basis/value length mismatch %d != %d",
			ErrInvariant, len(basis), len(values))
	}
	result := big.NewInt(0)
	for i := range values {
		term := new(big.Int).Mul(values[i], basis[i])
		term.Mod(term, order)
		result.Add(result, term)
		result.Mod(result, order)
	}
	return result, nil
}

// checkDistinct verifies that holder indices are pairwise distinct and
// 1-based. Duplicates mean the caller accepted two shares from the same
// holder, which the coordinating layer must never do.
func checkDistinct(indices []int) error {
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 1 {
			return fmt.Errorf("%w: holder index %d is not 1-based", ErrInvariant, idx)
		}
		if _, ok := seen[idx]; ok {
			return fmt.Errorf("%w: duplicate holder index %d", ErrInvariant, idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

var order = bls.Order()
