// Package cli holds the terminal-facing pieces shared by slreload commands.
//
// Flags are registered through RegisterCommonFlags, RegisterOutputFlags and
// RegisterReloadFlags so every command spells them the same way.
//
// Instance listings are printed by WriteInstances in one of four formats:
//   - table: kubectl-style plain columns (PlainTableWriter)
//   - wide: a bordered go-pretty table with IDs and addresses
//   - json, yaml: the provider.Instance fields as-is
//
// Confirmation prompts use readline on a terminal and a plain line reader
// otherwise (NewPrompter). ProgressProvider draws a spinner on stderr while
// the account is being listed.
//
// Failures to reach the API are turned into *TransportError values carrying
// a hint about the configuration setting most likely at fault.
package cli
