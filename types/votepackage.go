package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// VotePackage is the payload an encryptor publishes for a single timed-release
// vote: the authenticated ciphertext, the two commitment points of the
// ephemeral key, the ordered blinding values for holders beyond the threshold,
// and the threshold itself. It is what the coordinating layer stores on chain
// and what a decryptor needs (together with the submitted shares) to open the
// vote after the deadline.
type VotePackage struct {
	Ciphertext HexBytes   `json:"ciphertext" cbor:"0,keyasint"`
	G1R        HexBytes   `json:"g1r"        cbor:"1,keyasint"`
	G2R        HexBytes   `json:"g2r"        cbor:"2,keyasint"`
	Alphas     []HexBytes `json:"alphas"     cbor:"3,keyasint,omitempty"`
	Threshold  int        `json:"threshold"  cbor:"4,keyasint"`
}

// SubmittedShare is a share accepted by the coordinating layer after pairing
// verification: the 1-based holder index and the holder's published share
// point.
type SubmittedShare struct {
	Index int      `json:"index" cbor:"0,keyasint"`
	Share HexBytes `json:"share" cbor:"1,keyasint"`
}

// Marshal encodes the vote package as CBOR.
func (v *VotePackage) Marshal() ([]byte, error) {
	data, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vote package: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a CBOR encoded vote package.
func (v *VotePackage) Unmarshal(data []byte) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal vote package: %w", err)
	}
	return nil
}
