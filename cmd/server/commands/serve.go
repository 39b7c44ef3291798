package commands

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fleshka4/amm-dapp-connector/internal/service"
	transport "github.com/fleshka4/amm-dapp-connector/internal/transport/http"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			svc := service.NewDappService(a.provider, a.connector)
			svc.Connect(cmd.Context(), opts.account)

			srv := transport.NewServer(svc, a.cfg, a.logger)
			if err := srv.ListenAndServe(a.cfg.ListenAddr); err != nil {
				return errors.Wrap(err, "srv.ListenAndServe")
			}
			return nil
		},
	}
}
