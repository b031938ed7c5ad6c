// Package logging provides the structured logger used across slreload.
//
// It is a thin layer over Go's slog package: every entry carries a
// subsystem identifier and, once SetRunID has been called, the id of the
// current reload run so that one invocation can be followed through the
// debug output.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelWarn, os.Stderr)
//	logging.SetRunID(uuid.NewString())
//
//	logging.Info("Reload", "resolved %d targets", len(targets))
//	logging.Debug("SoftLayer", "GET %s", path)
//	logging.Error("Reload", err, "listing failed")
//
// Logs go to stderr in CLI mode so the reload progress written to stdout
// stays machine-readable. The default level is WARN; --debug lowers it.
//
// # Subsystems
//
//   - **ConfigLoader**: configuration loading
//   - **Reload**: target resolution, dispatch and polling
//   - **SoftLayer**: HTTP calls to the provider API
//   - **CLI**: command wiring
//
// LeveledLogger adapts the package to libraries that expect a key/value
// leveled logger (go-retryablehttp).
package logging
