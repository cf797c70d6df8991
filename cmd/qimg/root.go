package main

import (
	"github.com/jimyag/qimg/internal/qimg/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var qemuImgPath string

	cmd := &cobra.Command{
		Use:           "qimg",
		Short:         "Create, resize or remove disk images with qemu-img",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&qemuImgPath, "qemu-img", "", "path to the qemu-img binary (default from QIMG_QEMU_IMG_PATH)")

	loadConfig := func(c *cobra.Command) (*config.Config, error) {
		cfg, err := config.New()
		if err != nil {
			return nil, err
		}
		if c.Flags().Changed("qemu-img") {
			cfg.QemuImgPath = qemuImgPath
		}
		return cfg, nil
	}

	cmd.AddCommand(newApplyCmd(loadConfig), newServeCmd(loadConfig))
	return cmd
}
