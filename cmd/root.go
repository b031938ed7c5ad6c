package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"slreload/internal/cli"
	"slreload/internal/config"
	"slreload/internal/provider"
	"slreload/internal/reload"
	"slreload/internal/softlayer"
	"slreload/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution, including a cancelled
	// run and runs where some reloads were rejected.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (unknown hosts, busy targets,
	// configuration or API failures, invalid arguments).
	ExitCodeError = 1
	// ExitCodePollTimeout indicates that reloads were issued but did not
	// finish within --max-wait.
	ExitCodePollTimeout = 4
)

// version is injected by main at build time.
var version = "dev"

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// newProvider builds the provider used by every command. Tests replace it.
var newProvider = func(cfg config.SoftLayerConfig, runID string) provider.Provider {
	return softlayer.NewClient(softlayer.Options{
		Endpoint:  cfg.Endpoint,
		Username:  cfg.Username,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		RequestID: runID,
	})
}

// newRootCmd builds the command tree. The root command itself performs
// the reload.
func newRootCmd() *cobra.Command {
	var common cli.CommandFlags
	var reloadFlags cli.ReloadFlags

	root := &cobra.Command{
		Use:   "slreload [flags] HOST...",
		Short: "Reload the operating system of SoftLayer instances",
		Long: `slreload reprovisions the operating system of SoftLayer virtual
instances and bare-metal hosts, installing every SSH key on the account,
and waits until the reloads have finished.

HOST arguments are shell globs matched against fully qualified domain names
(for example 'web*.example.com'). Patterns that match nothing are ignored.
With --exact they are exact names instead and every one must exist.

No reload is issued while any target still has a transaction in progress.`,
		Example: `  slreload 'web*.example.com'
  slreload --exact --virtual-only -y web1.example.com web2.example.com
  slreload --max-wait 30m 'db?.example.com'`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(cmd.ErrOrStderr(), &common)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReload(cmd, &common, &reloadFlags, args)
		},
	}
	root.SetVersionTemplate(`{{printf "slreload version %s\n" .Version}}`)

	cli.RegisterCommonFlags(root, &common)
	cli.RegisterReloadFlags(root, &reloadFlags)

	root.AddCommand(newListCmd(&common))
	root.AddCommand(newVersionCmd())
	return root
}

// initLogging sends log output to w at the level picked by --log-level,
// or DEBUG when --debug is set.
func initLogging(w io.Writer, common *cli.CommandFlags) error {
	level, err := logging.ParseLevel(common.LogLevel)
	if err != nil {
		return err
	}
	if common.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, w)
	return nil
}

// Execute is the main entry point for the CLI application. It is called
// by main.main() and exits the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command tree with the given arguments and streams and
// returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitCodeSuccess
	}
	reportError(out, errOut, err)
	return getExitCode(err)
}

// reportError prints err for the operator. Refusals to start a reload are
// part of the normal output and go to out; everything else goes to errOut.
func reportError(out, errOut io.Writer, err error) {
	var notFound *reload.TargetsNotFoundError
	var busy *reload.ActiveTransactionsError
	var cfgErr *config.ConfigurationError

	switch {
	case errors.As(err, &notFound), errors.As(err, &busy):
		fmt.Fprintln(out, err)
	case errors.As(err, &cfgErr):
		fmt.Fprintln(errOut, cfgErr.DetailedError())
	default:
		fmt.Fprintln(errOut, cli.FormatError(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	var timeout *reload.PollTimeoutError
	if errors.As(err, &timeout) {
		return ExitCodePollTimeout
	}
	return ExitCodeError
}
