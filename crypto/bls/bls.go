// Package bls wraps the gnark-crypto BLS12-381 implementation with the group
// operations the timed-release protocol needs: generator multiplications in G1
// and G2, arbitrary public-key multiplications, hash-to-curve and the pairing
// equality check used for public share verification.
//
// Points cross the package boundary in the canonical gnark-crypto compressed
// encoding (48 bytes for G1, 96 for G2). Scalars are *big.Int values reduced
// into the scalar field; ScalarFromBytes is the single parsing boundary for
// untrusted scalar input.
package bls

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	// G1PointSize is the compressed serialization length of a G1 point.
	G1PointSize = bls12381.SizeOfG1AffineCompressed
	// G2PointSize is the compressed serialization length of a G2 point.
	G2PointSize = bls12381.SizeOfG2AffineCompressed
	// ScalarSize is the fixed byte width of a serialized scalar, enough to
	// hold any canonical field element with leading zeros preserved.
	ScalarSize = fr.Bytes

	// hashToG1DST is the domain separation tag for hash-to-curve of vote
	// option strings.
	hashToG1DST = "TIMELOCK_VOTE_BLS12381G1_XMD:SHA-256_SSWU_RO_"
)

// fieldOrder is the order of the BLS12-381 scalar field, loaded once at
// process start. It is never mutated; use Order() to obtain a copy.
var fieldOrder = fr.Modulus()

var g1Gen, g2Gen = func() (bls12381.G1Affine, bls12381.G2Affine) {
	_, _, g1, g2 := bls12381.Generators()
	return g1, g2
}()

// Order returns a copy of the scalar field order of BLS12-381.
func Order() *big.Int {
	return new(big.Int).Set(fieldOrder)
}

// RandomScalar draws 32 bytes from the operating system's secure random
// source, interprets them big-endian and reduces the result into the scalar
// field.
func RandomScalar() (*big.Int, error) {
	buf := make([]byte, ScalarSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	s := new(big.Int).SetBytes(buf)
	return s.Mod(s, fieldOrder), nil
}

// ScalarFromBytes interprets buf as a big-endian unsigned integer and reduces
// it into the scalar field. It is the parsing boundary for scalars received
// from the coordinating layer.
func ScalarFromBytes(buf []byte) *big.Int {
	s := new(big.Int).SetBytes(buf)
	return s.Mod(s, fieldOrder)
}

// ScalarMulG1 multiplies the G1 generator by the given scalar and returns the
// compressed point.
func ScalarMulG1(scalar *big.Int) []byte {
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1Gen, scalar)
	buf := p.Bytes()
	return buf[:]
}

// ScalarMulG2 multiplies the G2 generator by the given scalar and returns the
// compressed point.
func ScalarMulG2(scalar *big.Int) []byte {
	var p bls12381.G2Affine
	p.ScalarMultiplication(&g2Gen, scalar)
	buf := p.Bytes()
	return buf[:]
}

// PKTimesScalar deserializes a compressed G1 public key and multiplies it by
// the given scalar. It returns an error if pk is not a valid G1 point.
func PKTimesScalar(pk []byte, scalar *big.Int) ([]byte, error) {
	p, err := UnmarshalG1(pk)
	if err != nil {
		return nil, err
	}
	p.ScalarMultiplication(&p, scalar)
	buf := p.Bytes()
	return buf[:], nil
}

// UnmarshalG1 deserializes a compressed G1 point, checking that it is on the
// curve and in the correct subgroup.
func UnmarshalG1(buf []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(buf) != G1PointSize {
		return p, fmt.Errorf("invalid G1 point length %d, expected %d", len(buf), G1PointSize)
	}
	if _, err := p.SetBytes(buf); err != nil {
		return p, fmt.Errorf("failed to deserialize G1 point: %w", err)
	}
	return p, nil
}

// UnmarshalG2 deserializes a compressed G2 point, checking that it is on the
// curve and in the correct subgroup.
func UnmarshalG2(buf []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(buf) != G2PointSize {
		return p, fmt.Errorf("invalid G2 point length %d, expected %d", len(buf), G2PointSize)
	}
	if _, err := p.SetBytes(buf); err != nil {
		return p, fmt.Errorf("failed to deserialize G2 point: %w", err)
	}
	return p, nil
}

// HashToG1 maps arbitrary bytes to a G1 point with the standard hash-to-curve
// construction. The mapping is deterministic.
func HashToG1(msg []byte) ([]byte, error) {
	p, err := bls12381.HashToG1(msg, []byte(hashToG1DST))
	if err != nil {
		return nil, fmt.Errorf("hash to G1 failed: %w", err)
	}
	buf := p.Bytes()
	return buf[:], nil
}

// HashToScalar hashes arbitrary bytes with SHA-256 and reduces the digest into
// the scalar field. The mapping is deterministic.
func HashToScalar(data []byte) *big.Int {
	digest := sha256.Sum256(data)
	return ScalarFromBytes(digest[:])
}

// PointToScalar reduces the compressed serialization of a G1 point into the
// scalar field. This is the canonical point-to-scalar mapping used for share
// values: both the encryptor (from pk^r) and each holder (from g1r^sk) arrive
// at the same scalar.
func PointToScalar(point []byte) *big.Int {
	return ScalarFromBytes(point)
}

// PairingEq reports whether e(p1, q1) == e(p2, q2). All four arguments are
// compressed points; any malformed input yields an error.
func PairingEq(p1, q1, p2, q2 []byte) (bool, error) {
	g1a, err := UnmarshalG1(p1)
	if err != nil {
		return false, err
	}
	g2a, err := UnmarshalG2(q1)
	if err != nil {
		return false, err
	}
	g1b, err := UnmarshalG1(p2)
	if err != nil {
		return false, err
	}
	g2b, err := UnmarshalG2(q2)
	if err != nil {
		return false, err
	}
	left, err := bls12381.Pair([]bls12381.G1Affine{g1a}, []bls12381.G2Affine{g2a})
	if err != nil {
		return false, fmt.Errorf("pairing evaluation failed: %w", err)
	}
	right, err := bls12381.Pair([]bls12381.G1Affine{g1b}, []bls12381.G2Affine{g2b})
	if err != nil {
		return false, fmt.Errorf("pairing evaluation failed: %w", err)
	}
	return left.Equal(&right), nil
}

// G2Generator returns the compressed G2 generator point.
func G2Generator() []byte {
	buf := g2Gen.Bytes()
	return buf[:]
}
