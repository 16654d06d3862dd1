// Package ballot holds the ancillary vote-level utilities: the anti-replay
// nullifier and the encoding of ballot options as curve points.
package ballot

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"

	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/types"
)

// ErrUnknownOption is returned when a point does not match any of the
// provided option strings.
var ErrUnknownOption = errors.New("point does not encode a known option")

// nullifierDomain separates nullifier hashes from any other use of the same
// private key.
const nullifierDomain = "nullifier:"

// Nullifier derives the one-way tag for a (private key, vote context) pair.
// The coordinating layer rejects a second submission carrying the same
// nullifier without ever learning the private key. The derivation is
// deterministic: same key and context, same nullifier.
func Nullifier(privateKey *big.Int, contextID string) types.HexBytes {
	preimage := fmt.Sprintf("%s%x:%s", nullifierDomain, privateKey.Bytes(), contextID)
	digest := sha256.Sum256([]byte(preimage))
	return digest[:]
}

// EncodeOption maps a ballot option string to a G1 point with deterministic
// hash-to-curve.
func EncodeOption(option string) (types.HexBytes, error) {
	point, err := bls.HashToG1([]byte(option))
	if err != nil {
		return nil, fmt.Errorf("failed to encode option %q: %w", option, err)
	}
	return point, nil
}

// DecodeOption recovers the option string a point encodes by re-encoding each
// candidate and comparing. The scan is linear in the number of options, which
// is fine for ballot-sized option sets.
func DecodeOption(point types.HexBytes, options []string) (string, error) {
	for _, option := range options {
		encoded, err := EncodeOption(option)
		if err != nil {
			return "", err
		}
		if encoded.Equal(point) {
			return option, nil
		}
	}
	return "", ErrUnknownOption
}
