package types

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHexBytesJSON(t *testing.T) {
	c := qt.New(t)

	hb := HexBytes{0xde, 0xad, 0xbe, 0xef}
	data, err := json.Marshal(hb)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `"0xdeadbeef"`)

	var back HexBytes
	c.Assert(json.Unmarshal(data, &back), qt.IsNil)
	c.Assert(back.Equal(hb), qt.IsTrue)

	// The 0x prefix is optional on input.
	c.Assert(json.Unmarshal([]byte(`"deadbeef"`), &back), qt.IsNil)
	c.Assert(back.Equal(hb), qt.IsTrue)

	c.Assert(json.Unmarshal([]byte(`"0xzz"`), &back), qt.IsNotNil)
}

func TestHexBytesHelpers(t *testing.T) {
	c := qt.New(t)

	hb, err := HexStringToHexBytes("0x0102")
	c.Assert(err, qt.IsNil)
	c.Assert(hb.String(), qt.Equals, "0x0102")
	c.Assert(hb.Hex(), qt.Equals, "0102")
	c.Assert(hb.Bytes(), qt.DeepEquals, []byte{0x01, 0x02})
	c.Assert(hb.BigInt().MathBigInt().Cmp(big.NewInt(0x0102)), qt.Equals, 0)

	// The accessors must be callable on the unaddressable result of a
	// conversion, the common form at call sites.
	c.Assert(HexBytes([]byte{0xab, 0xcd}).String(), qt.Equals, "0xabcd")
	c.Assert(HexBytes([]byte{0xab}).BigInt().MathBigInt().Cmp(big.NewInt(0xab)), qt.Equals, 0)

	padded := hb.LeftPad(4)
	c.Assert([]byte(padded), qt.DeepEquals, []byte{0x00, 0x00, 0x01, 0x02})
	// Already long enough: unchanged.
	c.Assert([]byte(hb.LeftPad(2)), qt.DeepEquals, []byte{0x01, 0x02})
}

func TestBigIntMarshal(t *testing.T) {
	c := qt.New(t)

	b := new(BigInt).SetUint64(123456)
	data, err := json.Marshal(b)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `"123456"`)

	var back BigInt
	c.Assert(json.Unmarshal(data, &back), qt.IsNil)
	c.Assert(back.Equal(b), qt.IsTrue)
	c.Assert(back.MathBigInt().Cmp(big.NewInt(123456)), qt.Equals, 0)
}

func TestVotePackageRoundtrip(t *testing.T) {
	c := qt.New(t)

	pkg := &VotePackage{
		Ciphertext: HexBytes{0x01, 0x02, 0x03},
		G1R:        HexBytes{0xaa, 0xbb},
		G2R:        HexBytes{0xcc, 0xdd},
		Alphas:     []HexBytes{{0x10}, {0x20}},
		Threshold:  3,
	}

	data, err := pkg.Marshal()
	c.Assert(err, qt.IsNil)
	var back VotePackage
	c.Assert(back.Unmarshal(data), qt.IsNil)
	c.Assert(&back, qt.DeepEquals, pkg)

	jsonData, err := json.Marshal(pkg)
	c.Assert(err, qt.IsNil)
	var fromJSON VotePackage
	c.Assert(json.Unmarshal(jsonData, &fromJSON), qt.IsNil)
	c.Assert(&fromJSON, qt.DeepEquals, pkg)
}
