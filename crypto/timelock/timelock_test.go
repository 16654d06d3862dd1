package timelock

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/crypto/votecipher"
	"github.com/fshirazi710/timelock-node/types"
)

// newCommittee generates n holder keypairs and returns them with their
// ordered public keys.
func newCommittee(c *qt.C, n int) ([]*bls.KeyPair, []types.HexBytes) {
	holders := make([]*bls.KeyPair, n)
	pubKeys := make([]types.HexBytes, n)
	for i := range holders {
		kp, err := bls.GenerateKeyPair()
		c.Assert(err, qt.IsNil)
		holders[i] = kp
		pubKeys[i] = kp.PublicKey
	}
	return holders, pubKeys
}

// holderShare computes the share of the 1-based holder index in scalar form.
func holderShare(c *qt.C, holders []*bls.KeyPair, g1r types.HexBytes, index int) Share {
	point, err := ComputeShare(holders[index-1].PrivateKey, g1r)
	c.Assert(err, qt.IsNil)
	value, err := ShareScalar(point)
	c.Assert(err, qt.IsNil)
	return Share{Index: index, Value: value}
}

func TestSetupAndReconstruct(t *testing.T) {
	c := qt.New(t)
	const (
		threshold = 3
		n         = 5
	)

	holders, pubKeys := newCommittee(c, n)
	result, err := Setup(pubKeys, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(result.G1R, qt.HasLen, bls.G1PointSize)
	c.Assert(result.G2R, qt.HasLen, bls.G2PointSize)
	c.Assert(result.Alphas, qt.HasLen, n-threshold)

	// Holders 2, 4 and 5 participate: 4 and 5 need their alpha correction.
	shares := []Share{
		holderShare(c, holders, result.G1R, 2),
		holderShare(c, holders, result.G1R, 4),
		holderShare(c, holders, result.G1R, 5),
	}
	key, err := RecoverKey(shares, result.Alphas, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(key.Cmp(result.Key), qt.Equals, 0)

	// The first t holders reconstruct the same key without any correction.
	shares = []Share{
		holderShare(c, holders, result.G1R, 1),
		holderShare(c, holders, result.G1R, 2),
		holderShare(c, holders, result.G1R, 3),
	}
	key, err = RecoverKey(shares, result.Alphas, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(key.Cmp(result.Key), qt.Equals, 0)
}

func TestReconstructOrderIndependence(t *testing.T) {
	c := qt.New(t)
	const (
		threshold = 3
		n         = 5
	)

	holders, pubKeys := newCommittee(c, n)
	result, err := Setup(pubKeys, threshold)
	c.Assert(err, qt.IsNil)

	permutations := [][]int{
		{2, 4, 5},
		{5, 2, 4},
		{4, 5, 2},
	}
	for _, perm := range permutations {
		shares := make([]Share, len(perm))
		for i, idx := range perm {
			shares[i] = holderShare(c, holders, result.G1R, idx)
		}
		key, err := RecoverKey(shares, result.Alphas, threshold)
		c.Assert(err, qt.IsNil)
		c.Assert(key.Cmp(result.Key), qt.Equals, 0,
			qt.Commentf("permutation %v reconstructed a different key", perm))
	}
}

func TestReconstructOverThreshold(t *testing.T) {
	c := qt.New(t)
	const (
		threshold = 3
		n         = 5
	)

	holders, pubKeys := newCommittee(c, n)
	result, err := Setup(pubKeys, threshold)
	c.Assert(err, qt.IsNil)

	// All five holders submit; any t of them suffice.
	shares := make([]Share, n)
	for i := 1; i <= n; i++ {
		shares[i-1] = holderShare(c, holders, result.G1R, i)
	}
	key, err := RecoverKey(shares, result.Alphas, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(key.Cmp(result.Key), qt.Equals, 0)
}

func TestReconstructInsufficientShares(t *testing.T) {
	c := qt.New(t)

	holders, pubKeys := newCommittee(c, 5)
	result, err := Setup(pubKeys, 3)
	c.Assert(err, qt.IsNil)

	shares := []Share{
		holderShare(c, holders, result.G1R, 1),
		holderShare(c, holders, result.G1R, 2),
	}
	_, err = RecoverKey(shares, result.Alphas, 3)
	c.Assert(err, qt.ErrorIs, ErrInsufficientShares)
}

func TestReconstructDuplicateIndex(t *testing.T) {
	c := qt.New(t)

	holders, pubKeys := newCommittee(c, 5)
	result, err := Setup(pubKeys, 3)
	c.Assert(err, qt.IsNil)

	dup := holderShare(c, holders, result.G1R, 2)
	shares := []Share{dup, dup, holderShare(c, holders, result.G1R, 3)}
	_, err = RecoverKey(shares, result.Alphas, 3)
	c.Assert(err, qt.ErrorIs, ErrInvariant)
}

func TestSetupInvalidThreshold(t *testing.T) {
	c := qt.New(t)
	_, pubKeys := newCommittee(c, 3)

	_, err := Setup(pubKeys, 1)
	c.Assert(err, qt.ErrorIs, ErrInvalidThreshold)
	_, err = Setup(pubKeys, 4)
	c.Assert(err, qt.ErrorIs, ErrInvalidThreshold)
}

func TestTamperedShareBreaksDecryption(t *testing.T) {
	c := qt.New(t)
	const (
		threshold = 3
		n         = 5
	)

	holders, pubKeys := newCommittee(c, n)
	result, err := Setup(pubKeys, threshold)
	c.Assert(err, qt.IsNil)

	ciphertext, err := votecipher.Encrypt([]byte("ballot for option A"),
		votecipher.KeyFromScalar(result.Key))
	c.Assert(err, qt.IsNil)

	shares := []Share{
		holderShare(c, holders, result.G1R, 1),
		holderShare(c, holders, result.G1R, 2),
		holderShare(c, holders, result.G1R, 3),
	}
	// Corrupt one share. Reconstruction still "succeeds" (no oracle on share
	// correctness at this layer) but yields a different key, so the
	// authenticated decryption fails downstream.
	shares[1].Value = shares[1].Value.Add(shares[1].Value, big.NewInt(1))

	key, err := RecoverKey(shares, result.Alphas, threshold)
	c.Assert(err, qt.IsNil)
	c.Assert(key.Cmp(result.Key) != 0, qt.IsTrue)

	_, err = votecipher.Decrypt(ciphertext, votecipher.KeyFromScalar(key))
	c.Assert(err, qt.ErrorIs, votecipher.ErrDecryptionFailed)
}

func TestVerifyShare(t *testing.T) {
	c := qt.New(t)

	holders, pubKeys := newCommittee(c, 3)
	result, err := Setup(pubKeys, 2)
	c.Assert(err, qt.IsNil)

	share, err := ComputeShare(holders[0].PrivateKey, result.G1R)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyShare(share, holders[0].PublicKey, result.G2R), qt.IsTrue)

	// Substituting any of {share, public key, g2 commitment} must fail.
	otherShare, err := ComputeShare(holders[1].PrivateKey, result.G1R)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyShare(otherShare, holders[0].PublicKey, result.G2R), qt.IsFalse)
	c.Assert(VerifyShare(share, holders[1].PublicKey, result.G2R), qt.IsFalse)

	otherResult, err := Setup(pubKeys, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyShare(share, holders[0].PublicKey, otherResult.G2R), qt.IsFalse)

	// Malformed input never panics or errors, it just fails verification.
	c.Assert(VerifyShare([]byte{0xde, 0xad}, holders[0].PublicKey, result.G2R), qt.IsFalse)
	c.Assert(VerifyShare(share, []byte{}, result.G2R), qt.IsFalse)
	c.Assert(VerifyShare(share, holders[0].PublicKey, []byte{0x00}), qt.IsFalse)
}

func TestComputeShareMalformedCommitment(t *testing.T) {
	c := qt.New(t)
	kp, err := bls.GenerateKeyPair()
	c.Assert(err, qt.IsNil)
	_, err = ComputeShare(kp.PrivateKey, []byte{0x01, 0x02, 0x03})
	c.Assert(err, qt.IsNotNil)
}
