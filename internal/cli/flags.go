package cli

import (
	"fmt"
	"time"

	"slreload/internal/config"

	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by every slreload command.
type CommandFlags struct {
	// Quiet suppresses progress indicators
	Quiet bool
	// Debug lowers the log level to DEBUG, whatever LogLevel says
	Debug bool
	// LogLevel is the minimum level logged on stderr
	LogLevel string
	// ConfigPath is the directory holding config.yaml
	ConfigPath string
}

// OutputFlags holds the formatting flags of commands that print data.
type OutputFlags struct {
	// OutputFormat is one of table, wide, json, yaml
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
}

// ReloadFlags holds the flags of the reload command.
type ReloadFlags struct {
	// Yes skips the confirmation prompt
	Yes bool
	// Exact matches host arguments by exact name instead of glob
	Exact bool
	// VirtualOnly leaves bare-metal hosts out of listings and reloads
	VirtualOnly bool
	// PollInterval overrides reload.pollInterval from the config file
	PollInterval time.Duration
	// MaxWait overrides reload.maxWait from the config file
	MaxWait time.Duration
}

// RegisterCommonFlags registers the persistent flags every command accepts.
//
// The registered flags are:
//   - --quiet/-q: Suppress progress indicators
//   - --debug: Enable debug logging on stderr
//   - --log-level: Minimum level logged on stderr
//   - --config-path: Configuration directory
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "warn", "Minimum level logged on stderr (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPath(), "Configuration directory")
}

// RegisterOutputFlags registers --output/-o and --no-headers.
func RegisterOutputFlags(cmd *cobra.Command, flags *OutputFlags) {
	cmd.Flags().StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, wide, json, yaml)")
	cmd.Flags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
}

// RegisterReloadFlags registers the flags controlling a reload run.
// --poll-interval and --max-wait only replace the configured values when
// given on the command line.
func RegisterReloadFlags(cmd *cobra.Command, flags *ReloadFlags) {
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&flags.Exact, "exact", false, "Treat HOST arguments as exact names; fail if any is missing")
	cmd.Flags().BoolVar(&flags.VirtualOnly, "virtual-only", false, "Only consider virtual instances, never bare-metal hosts")
	cmd.Flags().DurationVar(&flags.PollInterval, "poll-interval", config.DefaultPollInterval, "Wait between completion polls (overrides reload.pollInterval)")
	cmd.Flags().DurationVar(&flags.MaxWait, "max-wait", 0, "Give up waiting for completion after this long, 0 waits forever (overrides reload.maxWait)")
}

// ApplyTo overlays the reload flags given on cmd's command line onto cfg.
// An explicit --max-wait 0 lifts a configured bound.
func (f *ReloadFlags) ApplyTo(cmd *cobra.Command, cfg *config.ReloadConfig) error {
	if cmd.Flags().Changed("poll-interval") {
		if f.PollInterval <= 0 {
			return fmt.Errorf("--poll-interval must be greater than zero, got %s", f.PollInterval)
		}
		cfg.PollInterval = f.PollInterval
	}
	if cmd.Flags().Changed("max-wait") {
		if f.MaxWait < 0 {
			return fmt.Errorf("--max-wait must not be negative, got %s", f.MaxWait)
		}
		cfg.MaxWait = f.MaxWait
	}
	return nil
}

// Validate checks the output flags.
func (f *OutputFlags) Validate() error {
	return ValidateOutputFormat(f.OutputFormat)
}
