package config

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Wallet provider kinds.
const (
	WalletNone     = ""
	WalletNode     = "node"
	WalletKeystore = "keystore"
)

// EnvPassphrase names the environment variable holding the keystore passphrase.
const EnvPassphrase = "WALLET_PASSPHRASE"

// Config holds application configuration loaded from file.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	CallTimeout       time.Duration `yaml:"call_timeout"`

	Wallet WalletConfig `yaml:"wallet"`
	Log    LogConfig    `yaml:"log"`
}

// WalletConfig selects and configures the wallet provider.
type WalletConfig struct {
	Kind           string `yaml:"kind"`
	RPCURL         string `yaml:"rpc_url"`
	KeystoreDir    string `yaml:"keystore_dir"`
	HandshakeTries uint   `yaml:"handshake_tries"`

	// Passphrase is never read from the file.
	Passphrase string `yaml:"-"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Load reads the config from a YAML file path.
// A .env file in the working directory is loaded first, if present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "godotenv.Load")
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "os.Open")
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	return Parse(f)
}

// Parse decodes YAML config from r, applies fallbacks and validates it.
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decoder.Decode")
	}

	cfg.Wallet.Passphrase = os.Getenv(EnvPassphrase)

	// Fallbacks
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 2 * defaultTimeout
	}
	if cfg.Wallet.HandshakeTries == 0 {
		cfg.Wallet.HandshakeTries = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Wallet.Kind {
	case WalletNone:
	case WalletNode:
		if cfg.Wallet.RPCURL == "" {
			return errors.New("wallet.rpc_url is required for node wallet")
		}
	case WalletKeystore:
		if cfg.Wallet.RPCURL == "" {
			return errors.New("wallet.rpc_url is required for keystore wallet")
		}
		if cfg.Wallet.KeystoreDir == "" {
			return errors.New("wallet.keystore_dir is required for keystore wallet")
		}
	default:
		return errors.Errorf("unknown wallet.kind %q", cfg.Wallet.Kind)
	}
	return nil
}
