package commands

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fleshka4/amm-dapp-connector/internal/connector"
	transport "github.com/fleshka4/amm-dapp-connector/internal/transport/http"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Connect once and print the contract handles as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.close()

			a.connector.Update(cmd.Context(), connector.Connection{
				Account:  opts.account,
				Provider: a.provider,
			})
			syncErr := a.connector.Wait(cmd.Context())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(transport.NewStateResponse(a.connector.State())); err != nil {
				return errors.Wrap(err, "enc.Encode")
			}

			if syncErr != nil {
				return errors.Wrap(syncErr, "sync")
			}
			return nil
		},
	}
}
