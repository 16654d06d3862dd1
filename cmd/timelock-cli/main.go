// Command timelock-cli drives the timed-release voting cryptography from the
// command line: generate holder keypairs, seal a vote for a committee,
// compute and verify decryption shares after the deadline, and reconstruct
// the key to open the vote.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fshirazi710/timelock-node/crypto/ballot"
	"github.com/fshirazi710/timelock-node/crypto/bls"
	"github.com/fshirazi710/timelock-node/crypto/shamir"
	"github.com/fshirazi710/timelock-node/crypto/timelock"
	"github.com/fshirazi710/timelock-node/crypto/votecipher"
	"github.com/fshirazi710/timelock-node/log"
	"github.com/fshirazi710/timelock-node/types"
)

var commands = []string{
	"keygen", "seal", "share", "verify", "unseal",
	"shamir-deal", "shamir-recover", "nullifier",
}

func main() {
	cfg, command, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.Log.Level, cfg.Log.Output)

	if err := run(cfg, command); err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func run(cfg *Config, command string) error {
	switch command {
	case "keygen":
		return runKeygen(cfg)
	case "seal":
		return runSeal(cfg)
	case "share":
		return runShare(cfg)
	case "verify":
		return runVerify(cfg)
	case "unseal":
		return runUnseal(cfg)
	case "shamir-deal":
		return runShamirDeal(cfg)
	case "shamir-recover":
		return runShamirRecover(cfg)
	case "nullifier":
		return runNullifier(cfg)
	default:
		return fmt.Errorf("unknown command %q, expected one of: %s", command, strings.Join(commands, ", "))
	}
}

// runKeygen generates a holder keypair. With --password set, the private key
// is additionally printed in password-wrapped form for at-rest storage.
func runKeygen(cfg *Config) error {
	kp, err := bls.GenerateKeyPair()
	if err != nil {
		return err
	}
	out := map[string]any{
		"privateKey": types.HexBytes(kp.PrivateKey.Bytes()).String(),
		"publicKey":  kp.PublicKey.String(),
	}
	if cfg.Password != "" {
		wrapped, err := votecipher.EncryptWithPassword(kp.PrivateKey.Bytes(), cfg.Password)
		if err != nil {
			return err
		}
		out["wrappedPrivateKey"] = types.HexBytes(wrapped).String()
	}
	return printJSON(out)
}

// runSeal encrypts a vote payload for the holder committee and prints the
// vote package to publish.
func runSeal(cfg *Config) error {
	if err := validateScheme(cfg); err != nil {
		return err
	}
	if cfg.Message == "" {
		return fmt.Errorf("missing --message")
	}
	pubKeys, err := parseHexList(cfg.PubKeys)
	if err != nil {
		return fmt.Errorf("invalid --pubkeys: %w", err)
	}

	scheme := timelock.NewScheme(cfg.Scheme)
	deal, err := scheme.Deal(pubKeys, cfg.Threshold)
	if err != nil {
		return err
	}
	ciphertext, err := votecipher.Encrypt([]byte(cfg.Message), votecipher.KeyFromScalar(deal.Key))
	if err != nil {
		return err
	}
	log.Infow("vote sealed", "scheme", scheme.Name(), "threshold", cfg.Threshold, "holders", len(pubKeys))

	pkg := &types.VotePackage{
		Ciphertext: ciphertext,
		G1R:        deal.G1R,
		G2R:        deal.G2R,
		Alphas:     deal.Alphas,
		Threshold:  deal.Threshold,
	}
	out := map[string]any{"votePackage": pkg}
	if len(deal.HolderShares) > 0 {
		// Polynomial scheme: the dealer must distribute these confidentially.
		holderShares := make([]map[string]any, len(deal.HolderShares))
		for i, s := range deal.HolderShares {
			holderShares[i] = map[string]any{
				"index": s.Index,
				"value": types.HexBytes(s.Value.Bytes()).String(),
			}
		}
		out["holderShares"] = holderShares
	}
	return printJSON(out)
}

// runShare computes a holder's decryption share from its private key and the
// published g1 commitment.
func runShare(cfg *Config) error {
	sk, err := parsePrivKey(cfg)
	if err != nil {
		return err
	}
	g1r, err := types.HexStringToHexBytes(cfg.G1R)
	if err != nil {
		return fmt.Errorf("invalid --g1r: %w", err)
	}
	share, err := timelock.ComputeShare(sk, g1r)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"share": share.String()})
}

// runVerify checks a submitted share against the holder public key and the
// published g2 commitment.
func runVerify(cfg *Config) error {
	share, err := types.HexStringToHexBytes(cfg.Share)
	if err != nil {
		return fmt.Errorf("invalid --share: %w", err)
	}
	pubKey, err := types.HexStringToHexBytes(cfg.PubKey)
	if err != nil {
		return fmt.Errorf("invalid --pubkey: %w", err)
	}
	g2r, err := types.HexStringToHexBytes(cfg.G2R)
	if err != nil {
		return fmt.Errorf("invalid --g2r: %w", err)
	}
	return printJSON(map[string]any{"valid": timelock.VerifyShare(share, pubKey, g2r)})
}

// runUnseal reconstructs the ephemeral key from submitted shares and decrypts
// the vote package.
func runUnseal(cfg *Config) error {
	if err := validateScheme(cfg); err != nil {
		return err
	}
	if cfg.Package == "" {
		return fmt.Errorf("missing --package")
	}
	data, err := os.ReadFile(cfg.Package)
	if err != nil {
		return fmt.Errorf("failed to read vote package: %w", err)
	}
	var pkg types.VotePackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return fmt.Errorf("failed to parse vote package: %w", err)
	}

	key, err := recoverDealKey(cfg.Scheme, cfg.Shares, &pkg)
	if err != nil {
		return err
	}
	plaintext, err := votecipher.Decrypt(pkg.Ciphertext, votecipher.KeyFromScalar(key))
	if err != nil {
		return err
	}
	log.Infow("vote opened", "shares", len(cfg.Shares), "threshold", pkg.Threshold)
	return printJSON(map[string]any{"message": string(plaintext)})
}

// runShamirDeal splits a fresh secret into polynomial shares.
func runShamirDeal(cfg *Config) error {
	secret, shares, err := shamir.Generate(cfg.Threshold, cfg.Holders)
	if err != nil {
		return err
	}
	outShares := make([]map[string]any, len(shares))
	for i, s := range shares {
		outShares[i] = map[string]any{
			"index": s.Index,
			"value": types.HexBytes(s.Value.Bytes()).String(),
		}
	}
	return printJSON(map[string]any{
		"secret": types.HexBytes(secret.Bytes()).String(),
		"shares": outShares,
	})
}

// runShamirRecover reconstructs a polynomial-shared secret.
func runShamirRecover(cfg *Config) error {
	shares := make([]shamir.Share, 0, len(cfg.Shares))
	for _, raw := range cfg.Shares {
		index, value, err := parseShare(raw)
		if err != nil {
			return err
		}
		shares = append(shares, shamir.Share{Index: index, Value: value.BigInt().MathBigInt()})
	}
	secret, err := shamir.Reconstruct(shares, cfg.Threshold)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"secret": types.HexBytes(secret.Bytes()).String()})
}

// runNullifier derives the anti-replay tag for a private key and vote
// context. Without --context a fresh UUID is used and echoed back.
func runNullifier(cfg *Config) error {
	sk, err := parsePrivKey(cfg)
	if err != nil {
		return err
	}
	contextID := cfg.Context
	if contextID == "" {
		contextID = uuid.New().String()
	}
	n := ballot.Nullifier(sk, contextID)
	return printJSON(map[string]any{
		"context":   contextID,
		"nullifier": n.String(),
	})
}

// recoverDealKey parses the submitted index:hex shares and reconstructs the
// ephemeral key according to the scheme the vote was sealed with. Point-based
// shares are published G1 points; polynomial shares are raw scalar values.
func recoverDealKey(scheme string, rawShares []string, pkg *types.VotePackage) (*big.Int, error) {
	switch scheme {
	case timelock.SchemePolynomial:
		shares := make([]shamir.Share, 0, len(rawShares))
		for _, raw := range rawShares {
			index, value, err := parseShare(raw)
			if err != nil {
				return nil, err
			}
			shares = append(shares, shamir.Share{Index: index, Value: value.BigInt().MathBigInt()})
		}
		return shamir.Reconstruct(shares, pkg.Threshold)
	default:
		shares := make([]timelock.Share, 0, len(rawShares))
		for _, raw := range rawShares {
			index, point, err := parseShare(raw)
			if err != nil {
				return nil, err
			}
			value, err := timelock.ShareScalar(point)
			if err != nil {
				return nil, fmt.Errorf("share %d: %w", index, err)
			}
			shares = append(shares, timelock.Share{Index: index, Value: value})
		}
		return timelock.RecoverKey(shares, pkg.Alphas, pkg.Threshold)
	}
}

func parsePrivKey(cfg *Config) (*big.Int, error) {
	if cfg.PrivKey == "" {
		return nil, fmt.Errorf("missing --privkey")
	}
	raw, err := types.HexStringToHexBytes(cfg.PrivKey)
	if err != nil {
		return nil, fmt.Errorf("invalid --privkey: %w", err)
	}
	if cfg.Password != "" {
		unwrapped, err := votecipher.DecryptWithPassword(raw, cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap private key: %w", err)
		}
		raw = unwrapped
	}
	return bls.ScalarFromBytes(raw), nil
}

func parseHexList(values []string) ([]types.HexBytes, error) {
	out := make([]types.HexBytes, 0, len(values))
	for _, v := range values {
		b, err := types.HexStringToHexBytes(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// parseShare parses an "index:hex" pair.
func parseShare(raw string) (int, types.HexBytes, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("invalid share %q, expected index:hex", raw)
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid share index %q: %w", parts[0], err)
	}
	value, err := types.HexStringToHexBytes(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid share value for index %d: %w", index, err)
	}
	return index, value, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
