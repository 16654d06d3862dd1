package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fshirazi710/timelock-node/crypto/timelock"
)

const (
	defaultLogLevel  = "info"
	defaultLogOutput = "stderr"
)

// Config holds the CLI configuration, merged from flags, environment
// variables (TIMELOCK_ prefix) and defaults.
type Config struct {
	Log    LogConfig
	Scheme string `mapstructure:"scheme"`

	Message   string   `mapstructure:"message"`
	PubKeys   []string `mapstructure:"pubkeys"`
	Threshold int      `mapstructure:"threshold"`
	Holders   int      `mapstructure:"holders"`
	PrivKey   string   `mapstructure:"privkey"`
	G1R       string   `mapstructure:"g1r"`
	G2R       string   `mapstructure:"g2r"`
	PubKey    string   `mapstructure:"pubkey"`
	Share     string   `mapstructure:"share"`
	Shares    []string `mapstructure:"shares"`
	Package   string   `mapstructure:"package"`
	Context   string   `mapstructure:"context"`
	Password  string   `mapstructure:"password"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// loadConfig loads configuration from flags, environment variables, and
// defaults. The first positional argument is the command name.
func loadConfig() (*Config, string, error) {
	v := viper.New()

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)
	v.SetDefault("scheme", timelock.SchemePointBased)

	flag.String("log.level", defaultLogLevel, "log level (debug, info, warn, error)")
	flag.String("log.output", defaultLogOutput, "log output (stdout, stderr or a file path)")
	flag.StringP("scheme", "s", timelock.SchemePointBased,
		fmt.Sprintf("threshold scheme %v", timelock.Schemes()))
	flag.StringP("message", "m", "", "vote payload to seal")
	flag.StringSliceP("pubkeys", "p", []string{}, "ordered holder public keys (hex), comma-separated")
	flag.IntP("threshold", "t", 0, "number of shares required for reconstruction")
	flag.IntP("holders", "n", 0, "total number of holders (shamir commands)")
	flag.StringP("privkey", "k", "", "holder private key scalar (hex)")
	flag.String("g1r", "", "published g1 commitment (hex)")
	flag.String("g2r", "", "published g2 commitment (hex)")
	flag.String("pubkey", "", "holder public key (hex)")
	flag.String("share", "", "share point (hex)")
	flag.StringSlice("shares", []string{}, "submitted shares as index:hex pairs, comma-separated")
	flag.String("package", "", "path to a vote package JSON file")
	flag.String("context", "", "vote context id (defaults to a fresh UUID)")
	flag.String("password", "", "password for wrapping/unwrapping a private key")

	flag.CommandLine.SortFlags = false
	flag.Parse()

	if err := v.BindPFlags(flag.CommandLine); err != nil {
		return nil, "", fmt.Errorf("failed to bind flags: %w", err)
	}

	v.SetEnvPrefix("TIMELOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Output = v.GetString("log.output")

	args := flag.Args()
	if len(args) < 1 {
		return nil, "", fmt.Errorf("missing command, expected one of: %s", strings.Join(commands, ", "))
	}
	return &cfg, args[0], nil
}

// validateScheme checks the configured threshold scheme identifier.
func validateScheme(cfg *Config) error {
	if !timelock.IsValidScheme(cfg.Scheme) {
		return fmt.Errorf("unknown scheme %q, expected one of %v", cfg.Scheme, timelock.Schemes())
	}
	return nil
}
