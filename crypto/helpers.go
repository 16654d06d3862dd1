// Package crypto provides helper functions shared by the timed-release
// cryptography packages: fixed-width scalar serialization, length-matched XOR
// and finite-field reduction.
package crypto

import (
	"fmt"
	"math/big"
)

// ScalarWidth is the fixed byte width used whenever a scalar must be
// serialized with a stable length, e.g. for the XOR blinding of shares. The
// natural big-endian form of a scalar drops leading zeros, so every value is
// padded back to this width before any byte-wise operation.
const ScalarWidth = 32 // bytes

// PadScalar pads the input byte slice to ScalarWidth bytes. If the input is
// shorter, it prepends zeros; if it is longer, it truncates to the last
// ScalarWidth bytes.
func PadScalar(input []byte) []byte {
	if len(input) < ScalarWidth {
		out := make([]byte, ScalarWidth)
		copy(out[ScalarWidth-len(input):], input)
		return out
	} else if len(input) > ScalarWidth {
		return input[len(input)-ScalarWidth:]
	}
	return input
}

// BigIntToFixedBytes returns the big-endian representation of i padded with
// leading zeros to ScalarWidth bytes.
func BigIntToFixedBytes(i *big.Int) []byte {
	return PadScalar(i.Bytes())
}

// XORBytes computes the byte-wise XOR of two equal-length slices. Callers must
// pad both operands to a fixed width first; a length mismatch indicates a
// bookkeeping bug and is returned as an error.
func XORBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("xor length mismatch: %d != %d", len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out, nil
}

// BigToFF returns the finite field representation of the big.Int provided,
// reducing it into [0, field) only when needed.
func BigToFF(field, iv *big.Int) *big.Int {
	z := big.NewInt(0)
	if c := iv.Cmp(field); c == 0 {
		return z
	} else if c != 1 && iv.Cmp(z) != -1 {
		return iv
	}
	return z.Mod(iv, field)
}
