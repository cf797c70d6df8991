package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/jimyag/qimg/internal/qimg"
	qimgargs "github.com/jimyag/qimg/internal/qimg/args"
	"github.com/jimyag/qimg/internal/qimg/config"
	"github.com/jimyag/qimg/internal/qimg/entity"
	"github.com/spf13/cobra"
)

// errReported 表示错误已经以 JSON 结果的形式输出，main 只需要设置退出码
var errReported = errors.New("failure reported in result")

type applyOptions struct {
	dest        string
	format      string
	options     string
	size        string
	state       string
	allowShrink bool
	check       bool
}

func newApplyCmd(loadConfig func(*cobra.Command) (*config.Config, error)) *cobra.Command {
	o := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [ARGS_FILE]",
		Short: "Reconcile a disk image to the desired state",
		Long: `Reconcile a disk image to the desired state and print the result as JSON.

ARGS_FILE is either a YAML/JSON mapping or key=value pairs, for example:

  dest=/tmp/testimg size=5 format=raw

Flags override values read from ARGS_FILE.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return writeResult(out, &entity.Result{Failed: true, Msg: err.Error()}, err)
			}
			logger := qimg.NewLogger(cfg, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context())

			req, err := o.buildRequest(cmd, args)
			if err != nil {
				return writeResult(out, &entity.Result{Failed: true, Msg: err.Error()}, err)
			}
			spec, err := req.ToSpec()
			if err != nil {
				return writeResult(out, &entity.Result{Failed: true, Msg: err.Error()}, err)
			}

			result, err := qimg.NewReconciler(cfg).Reconcile(ctx, spec, req.IsCheckMode())
			return writeResult(out, result, err)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.dest, "dest", "", "the image file to create or remove")
	flags.StringVar(&o.format, "format", entity.DefaultFormat, "the image format")
	flags.StringVar(&o.options, "options", entity.DefaultOptions, "the disk format options, empty to omit -o")
	flags.StringVar(&o.size, "size", "", "the size of the image, required for present and resize")
	flags.StringVar(&o.state, "state", string(entity.StatePresent), "desired state: present, absent or resize")
	flags.BoolVar(&o.allowShrink, "allow-shrink", false, "allow resize to shrink the image")
	flags.BoolVar(&o.check, "check", false, "report what would change without changing anything")
	return cmd
}

// buildRequest 读取参数文件，再用显式设置的 flag 覆盖
func (o *applyOptions) buildRequest(cmd *cobra.Command, args []string) (*entity.ReconcileRequest, error) {
	req := &entity.ReconcileRequest{}
	if len(args) == 1 {
		var err error
		req, err = qimgargs.Load(args[0])
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dest") {
		req.Dest = o.dest
	}
	if flags.Changed("format") {
		req.Format = &o.format
	}
	if flags.Changed("options") {
		req.Options = &o.options
	}
	if flags.Changed("size") {
		req.Size = o.size
	}
	if flags.Changed("state") {
		req.State = o.state
	}
	if flags.Changed("allow-shrink") {
		req.AllowShrink = o.allowShrink
	}
	if flags.Changed("check") {
		req.CheckMode = o.check
		req.AnsibleCheckMode = false
	}
	return req, nil
}

func writeResult(w io.Writer, result *entity.Result, err error) error {
	if encErr := json.NewEncoder(w).Encode(result); encErr != nil {
		return encErr
	}
	if err != nil || result.Failed {
		return errReported
	}
	return nil
}
