package cmd

import (
	"slreload/internal/cli"
	"slreload/internal/config"
	"slreload/internal/reload"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type listOptions struct {
	output      cli.OutputFlags
	virtualOnly bool
}

// newListCmd creates the command that shows instances and their active
// transactions without changing anything.
func newListCmd(common *cli.CommandFlags) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list [PATTERN...]",
		Short: "List instances and their active transactions",
		Long: `List the virtual instances and bare-metal hosts on the account together
with any transaction in progress. With PATTERN arguments only instances whose
fully qualified domain name matches one of the shell globs are shown, which
makes this a dry run of the host selection used by a reload.`,
		Example: `  slreload list
  slreload list 'web*' -o wide
  slreload list --virtual-only -o json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, common, &opts, args)
		},
	}

	cli.RegisterOutputFlags(cmd, &opts.output)
	cmd.Flags().BoolVar(&opts.virtualOnly, "virtual-only", false, "Only list virtual instances")
	return cmd
}

func runList(cmd *cobra.Command, common *cli.CommandFlags, opts *listOptions, patterns []string) error {
	if err := opts.output.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(common.ConfigPath)
	if err != nil {
		return err
	}

	p := cli.NewProgressProvider(newProvider(cfg.SoftLayer, uuid.NewString()), cli.NewSpinner(cmd.ErrOrStderr(), common.Quiet))
	o := reload.New(p, reload.Options{
		Capabilities: reload.Capabilities{SupportsHardware: !opts.virtualOnly},
	})

	instances, err := o.ListInstances(cmd.Context())
	if err != nil {
		return cli.WrapTransportError(err, cfg.SoftLayer.Endpoint)
	}
	if len(patterns) > 0 {
		instances, err = reload.ResolveTargets(reload.ModePattern, patterns, instances)
		if err != nil {
			return err
		}
	}

	return cli.WriteInstances(cmd.OutOrStdout(), instances, cli.OutputFormat(opts.output.OutputFormat), opts.output.NoHeaders)
}
