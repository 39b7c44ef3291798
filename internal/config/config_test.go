package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr assert.ErrorAssertionFunc
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "empty file uses fallbacks",
			yaml:    "",
			wantErr: assert.NoError,
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, ":1337", cfg.ListenAddr)
				require.Equal(t, 5*time.Second, cfg.GraceTimeout)
				require.Equal(t, 5*time.Second, cfg.RequestTimeout)
				require.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
				require.Equal(t, 10*time.Second, cfg.CallTimeout)
				require.Equal(t, WalletNone, cfg.Wallet.Kind)
				require.Equal(t, uint(3), cfg.Wallet.HandshakeTries)
				require.Equal(t, "info", cfg.Log.Level)
			},
		},
		{
			name: "node wallet",
			yaml: `
listen_addr: ":8080"
call_timeout: 3s
wallet:
  kind: node
  rpc_url: http://127.0.0.1:8545
log:
  level: debug
  development: true
`,
			wantErr: assert.NoError,
			check: func(t *testing.T, cfg Config) {
				require.Equal(t, ":8080", cfg.ListenAddr)
				require.Equal(t, 3*time.Second, cfg.CallTimeout)
				require.Equal(t, WalletNode, cfg.Wallet.Kind)
				require.Equal(t, "http://127.0.0.1:8545", cfg.Wallet.RPCURL)
				require.Equal(t, "debug", cfg.Log.Level)
				require.True(t, cfg.Log.Development)
			},
		},
		{
			name: "node wallet without rpc url",
			yaml: `
wallet:
  kind: node
`,
			wantErr: assert.Error,
		},
		{
			name: "keystore wallet without dir",
			yaml: `
wallet:
  kind: keystore
  rpc_url: http://127.0.0.1:8545
`,
			wantErr: assert.Error,
		},
		{
			name: "unknown wallet kind",
			yaml: `
wallet:
  kind: metamask
`,
			wantErr: assert.Error,
		},
		{
			name:    "malformed yaml",
			yaml:    "listen_addr: [",
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.yaml))
			tt.wantErr(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParse_PassphraseFromEnv(t *testing.T) {
	t.Setenv(EnvPassphrase, "s3cret")

	cfg, err := Parse(strings.NewReader(`
wallet:
  kind: keystore
  rpc_url: http://127.0.0.1:8545
  keystore_dir: ./keystore
  passphrase: from-file
`))
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg.Wallet.Passphrase)
	require.Equal(t, "./keystore", cfg.Wallet.KeystoreDir)
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9000\"\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, ":9000", cfg.ListenAddr)
	})
}
