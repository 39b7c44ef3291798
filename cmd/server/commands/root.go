// Package commands holds the CLI of the connector service.
package commands

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/config"
	"github.com/fleshka4/amm-dapp-connector/internal/connector"
	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/logger"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

const defaultConfigPath = "cfg/config.yaml"

type options struct {
	configPath string
	account    string
}

// NewRootCmd builds the root command with the serve and inspect subcommands.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "amm-dapp",
		Short:         "Keeps USDC, JOE and AMM contract handles in sync with a wallet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindFlags(root.PersistentFlags(), opts)

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newInspectCmd(opts))
	return root
}

func bindFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config (default $CONFIG_PATH or "+defaultConfigPath+")")
	fs.StringVarP(&opts.account, "account", "a", "", "account to connect on start")
}

func (o *options) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

// app is everything both commands wire up.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	provider  wallet.Provider
	connector *connector.Connector
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	cfg, err := config.Load(opts.path())
	if err != nil {
		return nil, errors.Wrap(err, "config.Load")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, errors.Wrap(err, "logger.New")
	}

	provider, err := wallet.Detect(ctx, cfg.Wallet, log)
	if err != nil {
		return nil, errors.Wrap(err, "wallet.Detect")
	}

	set, err := contracts.DefaultSet()
	if err != nil {
		return nil, errors.Wrap(err, "contracts.DefaultSet")
	}

	return &app{
		cfg:       cfg,
		logger:    log,
		provider:  provider,
		connector: connector.New(set, log, connector.WithCallTimeout(cfg.CallTimeout)),
	}, nil
}

func (a *app) close() {
	a.connector.Close()
	if c, ok := a.provider.(interface{ Close() }); ok {
		c.Close()
	}
	_ = a.logger.Sync()
}
