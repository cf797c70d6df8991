package main

import (
	"github.com/jimyag/qimg/internal/qimg"
	"github.com/jimyag/qimg/internal/qimg/config"
	"github.com/spf13/cobra"
)

func newServeCmd(loadConfig func(*cobra.Command) (*config.Config, error)) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reconcile API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}

			logger := qimg.NewLogger(cfg, cmd.ErrOrStderr())
			return qimg.New(cfg).Run(logger.WithContext(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default from QIMG_ADDRESS)")
	return cmd
}
