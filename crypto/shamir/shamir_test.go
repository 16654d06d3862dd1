package shamir

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/util"
)

func TestGenerateAndReconstruct(t *testing.T) {
	c := qt.New(t)
	const (
		threshold = 3
		n         = 5
	)

	secret, shares, err := Generate(threshold, n)
	c.Assert(err, qt.IsNil)
	c.Assert(shares, qt.HasLen, n)
	for i, s := range shares {
		c.Assert(s.Index, qt.Equals, i+1)
	}

	// Any t-subset reconstructs the same secret, in any order.
	subsets := [][]Share{
		{shares[0], shares[1], shares[2]},
		{shares[4], shares[1], shares[3]},
		{shares[2], shares[0], shares[4]},
	}
	for _, subset := range subsets {
		got, err := Reconstruct(subset, threshold)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Cmp(secret), qt.Equals, 0)
	}

	// More than t shares also work; only the first t are consumed.
	got, err := Reconstruct(shares, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(secret), qt.Equals, 0)
}

func TestGenerateFromSecret(t *testing.T) {
	c := qt.New(t)

	secret := util.RandomBigInt(big.NewInt(1), bls.Order())
	shares, err := GenerateFromSecret(secret, 2, 4)
	c.Assert(err, qt.IsNil)

	got, err := Reconstruct(shares[1:3], 2)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(secret), qt.Equals, 0)

	// A secret above the field order is reduced before splitting.
	large := new(big.Int).Add(bls.Order(), big.NewInt(7))
	shares, err = GenerateFromSecret(large, 2, 3)
	c.Assert(err, qt.IsNil)
	got, err = Reconstruct(shares[:2], 2)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(big.NewInt(7)), qt.Equals, 0)
}

func TestInvalidThreshold(t *testing.T) {
	c := qt.New(t)

	_, err := GenerateFromSecret(big.NewInt(1), 1, 5)
	c.Assert(err, qt.ErrorIs, ErrInvalidThreshold)
	_, err = GenerateFromSecret(big.NewInt(1), 6, 5)
	c.Assert(err, qt.ErrorIs, ErrInvalidThreshold)
}

func TestReconstructInsufficientShares(t *testing.T) {
	c := qt.New(t)

	_, shares, err := Generate(3, 5)
	c.Assert(err, qt.IsNil)
	_, err = Reconstruct(shares[:2], 3)
	c.Assert(err, qt.ErrorIs, ErrInsufficientShares)
}
