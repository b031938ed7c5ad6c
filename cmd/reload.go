package cmd

import (
	"os"

	"slreload/internal/cli"
	"slreload/internal/config"
	"slreload/internal/reload"
	"slreload/pkg/logging"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// runReload performs one reload run for the given host arguments.
func runReload(cmd *cobra.Command, common *cli.CommandFlags, flags *cli.ReloadFlags, hosts []string) error {
	cfg, err := config.Load(common.ConfigPath)
	if err != nil {
		return err
	}
	if err := flags.ApplyTo(cmd, &cfg.Reload); err != nil {
		return err
	}

	runID := uuid.NewString()
	logging.SetRunID(runID)
	defer logging.SetRunID("")

	mode := reload.ModePattern
	if flags.Exact {
		mode = reload.ModeExact
	}

	p := cli.NewProgressProvider(newProvider(cfg.SoftLayer, runID), cli.NewSpinner(cmd.ErrOrStderr(), common.Quiet))
	o := reload.New(p, reload.Options{
		Mode:         mode,
		Capabilities: reload.Capabilities{SupportsHardware: !flags.VirtualOnly},
		PollInterval: cfg.Reload.PollInterval,
		MaxWait:      cfg.Reload.MaxWait,
		Out:          cmd.OutOrStdout(),
		Prompter:     prompterFor(cmd),
	})

	logging.Debug("CLI", "Starting %s reload of %v against %s", mode, hosts, cfg.SoftLayer.Endpoint)
	result, err := o.Run(cmd.Context(), hosts, flags.Yes)
	if err != nil {
		return cli.WrapTransportError(err, cfg.SoftLayer.Endpoint)
	}

	if failed := result.Failed(); len(failed) > 0 {
		logging.Warn("CLI", "%d of %d reload requests were rejected", len(failed), len(result.Outcomes))
	}
	return nil
}

// prompterFor asks on the command's stdin, with line editing when it is a
// terminal.
func prompterFor(cmd *cobra.Command) reload.Prompter {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return cli.NewPrompter(f, cmd.OutOrStdout())
	}
	return cli.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
