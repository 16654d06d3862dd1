package timelock

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/fshirazi710/timelock-node/crypto/shamir"
	"github.com/fshirazi710/timelock-node/types"
)

const (
	// SchemePointBased identifies the public-key-derived scheme with XOR
	// blinding: holders compute their own shares from the published g1
	// commitment, publicly verifiable via pairing.
	SchemePointBased = "pointbased"
	// SchemePolynomial identifies classical polynomial secret sharing: the
	// dealer evaluates a random polynomial and hands each holder its share
	// directly. No blinding values, no pairing verification.
	SchemePolynomial = "polynomial"
)

// Deal is the scheme-agnostic result of key distribution. Key is known only
// to the encryptor. For the point-based scheme, G1R/G2R/Alphas are the
// publication material and holders derive their own shares; for the
// polynomial scheme, HolderShares carries the per-holder evaluations the
// dealer must distribute confidentially.
type Deal struct {
	Key          *big.Int
	Threshold    int
	G1R          types.HexBytes
	G2R          types.HexBytes
	Alphas       []types.HexBytes
	HolderShares []Share
}

// Scheme abstracts the two secret-distribution mechanisms so call sites stay
// scheme-agnostic. Implementations are stateless and safe for concurrent use.
type Scheme interface {
	// Name returns the scheme identifier.
	Name() string
	// Deal produces an ephemeral key and the distribution material for the
	// given ordered holder public keys and threshold.
	Deal(pubKeys []types.HexBytes, threshold int) (*Deal, error)
	// Recover reconstructs the ephemeral key from at least threshold shares
	// of a previous deal.
	Recover(shares []Share, deal *Deal) (*big.Int, error)
}

// NewScheme creates a Scheme implementation from its identifier. It panics on
// an unsupported identifier; use IsValidScheme to check first.
func NewScheme(name string) Scheme {
	switch name {
	case SchemePointBased:
		return pointBasedScheme{}
	case SchemePolynomial:
		return polynomialScheme{}
	default:
		panic("unsupported threshold scheme: " + name)
	}
}

// Schemes returns the list of supported scheme identifiers.
func Schemes() []string {
	return []string{SchemePointBased, SchemePolynomial}
}

// IsValidScheme reports whether name identifies a supported scheme.
func IsValidScheme(name string) bool {
	return slices.Contains(Schemes(), name)
}

type pointBasedScheme struct{}

func (pointBasedScheme) Name() string { return SchemePointBased }

func (pointBasedScheme) Deal(pubKeys []types.HexBytes, threshold int) (*Deal, error) {
	result, err := Setup(pubKeys, threshold)
	if err != nil {
		return nil, err
	}
	return &Deal{
		Key:       result.Key,
		Threshold: threshold,
		G1R:       result.G1R,
		G2R:       result.G2R,
		Alphas:    result.Alphas,
	}, nil
}

func (pointBasedScheme) Recover(shares []Share, deal *Deal) (*big.Int, error) {
	return RecoverKey(shares, deal.Alphas, deal.Threshold)
}

type polynomialScheme struct{}

func (polynomialScheme) Name() string { return SchemePolynomial }

// Deal ignores the key material of the holders; only their count matters. The
// returned HolderShares must reach each holder over a confidential channel.
func (polynomialScheme) Deal(pubKeys []types.HexBytes, threshold int) (*Deal, error) {
	n := len(pubKeys)
	if threshold < 2 || threshold > n {
		return nil, fmt.Errorf("%w: t=%d n=%d", ErrInvalidThreshold, threshold, n)
	}
	secret, polyShares, err := shamir.Generate(threshold, n)
	if err != nil {
		return nil, err
	}
	holderShares := make([]Share, len(polyShares))
	for i, s := range polyShares {
		holderShares[i] = Share{Index: s.Index, Value: s.Value}
	}
	return &Deal{
		Key:          secret,
		Threshold:    threshold,
		HolderShares: holderShares,
	}, nil
}

func (polynomialScheme) Recover(shares []Share, deal *Deal) (*big.Int, error) {
	polyShares := make([]shamir.Share, len(shares))
	for i, s := range shares {
		polyShares[i] = shamir.Share{Index: s.Index, Value: s.Value}
	}
	key, err := shamir.Reconstruct(polyShares, deal.Threshold)
	if err != nil {
		if errors.Is(err, shamir.ErrInsufficientShares) {
			return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientShares, len(shares), deal.Threshold)
		}
		return nil, err
	}
	return key, nil
}
