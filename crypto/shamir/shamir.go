// Package shamir implements classical (t,n) Shamir secret sharing over the
// BLS12-381 scalar field. Unlike the point-based timelock scheme, every
// participant's share is a direct evaluation of a random polynomial, so any
// t-subset reconstructs identically and no blinding values exist. It serves
// as the simplified key-distribution alternative for the same ephemeral-key
// use case; the two schemes' shares must never be mixed.
package shamir

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto/bls"
)

// ErrInsufficientShares is returned when fewer than threshold shares are
// supplied to Reconstruct.
var ErrInsufficientShares = errors.New("insufficient shares for reconstruction")

// ErrInvalidThreshold is returned when the threshold is outside [2, n].
var ErrInvalidThreshold = errors.New("threshold must be between 2 and the number of shares")

// Share is a single polynomial evaluation: P(Index) with 1-based index.
type Share struct {
	Index int
	Value *big.Int
}

// Generate samples a random secret and returns it together with n shares of a
// degree-(threshold-1) polynomial whose constant term is the secret.
func Generate(threshold, n int) (*big.Int, []Share, error) {
	secret, err := bls.RandomScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sample secret: %w", err)
	}
	shares, err := GenerateFromSecret(secret, threshold, n)
	if err != nil {
		return nil, nil, err
	}
	return secret, shares, nil
}

// GenerateFromSecret splits an existing secret into n shares with the given
// threshold. The secret is reduced into the scalar field first.
func GenerateFromSecret(secret *big.Int, threshold, n int) ([]Share, error) {
	if threshold < 2 || threshold > n {
		return nil, fmt.Errorf("%w: t=%d n=%d", ErrInvalidThreshold, threshold, n)
	}
	order := bls.Order()

	// coeffs[0] = secret, the rest are random.
	coeffs := make([]*big.Int, threshold)
	coeffs[0] = new(big.Int).Mod(secret, order)
	for i := 1; i < threshold; i++ {
		c, err := bls.RandomScalar()
		if err != nil {
			return nil, fmt.Errorf("failed to sample coefficient %d: %w", i, err)
		}
		coeffs[i] = c
	}

	shares := make([]Share, 0, n)
	for j := 1; j <= n; j++ {
		shares = append(shares, Share{Index: j, Value: evaluate(coeffs, j, order)})
	}
	return shares, nil
}

// evaluate computes P(x) = Σ coeffs[i]·x^i mod order.
func evaluate(coeffs []*big.Int, x int, order *big.Int) *big.Int {
	result := big.NewInt(0)
	xBig := big.NewInt(int64(x))
	xPower := big.NewInt(1)
	for _, coeff := range coeffs {
		term := new(big.Int).Mul(coeff, xPower)
		term.Mod(term, order)
		result.Add(result, term)
		result.Mod(result, order)

		xPower.Mul(xPower, xBig)
		xPower.Mod(xPower, order)
	}
	return result
}

// Reconstruct recovers the secret from at least threshold shares by Lagrange
// interpolation at x = 0. Only the first threshold shares are used; the
// result is independent of the order in which they are supplied.
func Reconstruct(shares []Share, threshold int) (*big.Int, error) {
	if len(shares) < threshold {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientShares, len(shares), threshold)
	}
	chosen := shares[:threshold]
	order := bls.Order()

	secret := big.NewInt(0)
	for i, si := range chosen {
		numerator := big.NewInt(1)
		denominator := big.NewInt(1)
		for j, sj := range chosen {
			if i == j {
				continue
			}
			term := big.NewInt(int64(-sj.Index))
			term.Mod(term, order)
			numerator.Mul(numerator, term)
			numerator.Mod(numerator, order)

			term = big.NewInt(int64(si.Index - sj.Index))
			term.Mod(term, order)
			denominator.Mul(denominator, term)
			denominator.Mod(denominator, order)
		}
		denominatorInv := new(big.Int).ModInverse(denominator, order)
		if denominatorInv == nil {
			return nil, fmt.Errorf("no modular inverse for denominator of share %d (duplicate index?)", si.Index)
		}
		coeff := new(big.Int).Mul(numerator, denominatorInv)
		coeff.Mod(coeff, order)

		term := new(big.Int).Mul(si.Value, coeff)
		term.Mod(term, order)
		secret.Add(secret, term)
		secret.Mod(secret, order)
	}
	return secret, nil
}
