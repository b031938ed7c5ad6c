package reload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"slreload/internal/provider"
	"slreload/pkg/logging"
	slstrings "slreload/pkg/strings"
)

const subsystem = "Reload"

// confirmPrompt is shown after the target listing.
const confirmPrompt = "Start [y/N]: "

// Orchestrator drives a reload run against a provider. It is not safe for
// concurrent use; a run is strictly sequential.
type Orchestrator struct {
	provider provider.Provider
	opts     Options
}

// New creates an Orchestrator. Zero-valued options get their defaults.
func New(p provider.Provider, opts Options) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{provider: p, opts: opts}
}

// Run executes the whole workflow: resolve, precheck, confirm, dispatch
// and wait. Per-host reload failures are reported in the result, not as
// an error.
func (o *Orchestrator) Run(ctx context.Context, hosts []string, assumeYes bool) (Result, error) {
	result := Result{State: StateResolving}
	o.enter(StateResolving, "mode=%s hosts=%v", o.opts.Mode, hosts)

	targets, err := o.Resolve(ctx, hosts)
	if err != nil {
		return result, err
	}
	result.Targets = targets
	if len(targets) == 0 {
		logging.Warn(subsystem, "No instances matched %v", hosts)
		result.State = StateDone
		return result, nil
	}

	if err := CheckNoActiveTransactions(targets); err != nil {
		result.State = StatePrecheckFailed
		o.enter(StatePrecheckFailed, "%v", err)
		return result, err
	}
	result.State = StatePrecheckOK
	o.enter(StatePrecheckOK, "%d targets idle", len(targets))

	proceed, err := o.ConfirmOrAbort(ctx, targets, assumeYes)
	if err != nil {
		return result, err
	}
	if !proceed {
		result.State = StateCancelled
		o.enter(StateCancelled, "operator declined")
		return result, nil
	}

	keys, err := o.provider.ListSSHKeys(ctx)
	if err != nil {
		return result, fmt.Errorf("listing ssh keys: %w", err)
	}
	logging.Debug(subsystem, "Installing %d ssh keys on every target", len(keys))

	result.State = StateDispatching
	o.enter(StateDispatching, "%d targets", len(targets))
	result.Outcomes, err = o.DispatchReloads(ctx, targets, provider.KeyIDs(keys))
	if err != nil {
		return result, err
	}

	result.State = StatePolling
	o.enter(StatePolling, "interval=%s maxWait=%s", o.opts.PollInterval, o.opts.MaxWait)
	if err := o.AwaitCompletion(ctx, targetNames(targets)); err != nil {
		return result, err
	}

	result.State = StateDone
	o.enter(StateDone, "%d accepted, %d failed", len(result.Outcomes)-len(result.Failed()), len(result.Failed()))
	return result, nil
}

func (o *Orchestrator) enter(s State, format string, args ...interface{}) {
	logging.Info(subsystem, "%s: %s", s, fmt.Sprintf(format, args...))
}

// ListInstances returns every instance the run's capabilities cover:
// virtual instances, followed by hardware when supported.
func (o *Orchestrator) ListInstances(ctx context.Context) ([]provider.Instance, error) {
	instances, err := o.provider.ListVirtualInstances(ctx)
	if err != nil {
		return nil, err
	}
	if !o.opts.Capabilities.SupportsHardware {
		return instances, nil
	}
	hardware, err := o.provider.ListHardwareInstances(ctx)
	if err != nil {
		return nil, err
	}
	return append(instances, hardware...), nil
}

// Resolve lists the account and selects the targets named by hosts.
func (o *Orchestrator) Resolve(ctx context.Context, hosts []string) ([]provider.Instance, error) {
	all, err := o.ListInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	targets, err := ResolveTargets(o.opts.Mode, hosts, all)
	if err != nil {
		return nil, err
	}
	logging.Debug(subsystem, "Resolved %d of %d instances", len(targets), len(all))
	return targets, nil
}

// ConfirmOrAbort asks the operator to confirm the target list. It returns
// true straight away when assumeYes is set.
func (o *Orchestrator) ConfirmOrAbort(ctx context.Context, targets []provider.Instance, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if o.opts.Prompter == nil {
		return false, errors.New("confirmation required but no prompter configured; pass --yes to skip it")
	}

	answer, err := o.opts.Prompter.Ask(ctx, o.listing(targets), confirmPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return IsAffirmative(answer), nil
}

// listing renders the targets for the confirmation prompt.
func (o *Orchestrator) listing(targets []provider.Instance) string {
	names := targetNames(targets)
	if o.opts.Mode == ModeExact {
		return fmt.Sprintf("Going to reload: %s\n", strings.Join(names, ", "))
	}

	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Going to reload:\n")
	for _, n := range names {
		fmt.Fprintf(&b, " - %s\n", n)
	}
	return b.String()
}

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// DispatchReloads issues one reload per target, in order, installing
// sshKeyIDs on each. A provider-reported failure is recorded and the batch
// continues; any other error stops the batch and is returned along with
// the outcomes so far.
func (o *Orchestrator) DispatchReloads(ctx context.Context, targets []provider.Instance, sshKeyIDs []int64) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(targets))
	for _, t := range targets {
		outcome := Outcome{Host: t.FullyQualifiedDomainName, ID: t.ID, Kind: t.Kind}

		var err error
		if o.opts.Capabilities.SupportsHardware && t.Kind == provider.KindHardware {
			err = o.provider.ReloadHardwareInstance(ctx, t.ID, sshKeyIDs)
		} else {
			err = o.provider.ReloadVirtualInstance(ctx, t.ID, sshKeyIDs)
		}

		if err != nil {
			if _, ok := provider.AsAPIError(err); !ok {
				return outcomes, fmt.Errorf("reloading %s: %w", outcome.Host, err)
			}
			outcome.Err = err
			logging.Error(subsystem, err, "Reload of %s (id %d) rejected", outcome.Host, t.ID)
			fmt.Fprintf(o.opts.Out, "Failed to reload %s due to %s\n", outcome.Host, slstrings.SingleLine(err.Error()))
		} else {
			logging.Debug(subsystem, "Reload of %s (id %d, %s) accepted", outcome.Host, t.ID, t.Kind)
			fmt.Fprintf(o.opts.Out, "Reloaded %s\n", outcome.Host)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// AwaitCompletion polls the provider until none of the named instances
// reports an active transaction. Each poll that finds work pending writes
// one '.' and sleeps for the poll interval. The wait ends early with
// *PollTimeoutError once MaxWait has elapsed, or with ctx's error. A
// newline is written whenever the wait ends.
func (o *Orchestrator) AwaitCompletion(ctx context.Context, names []string) error {
	defer fmt.Fprint(o.opts.Out, "\n")

	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	start := o.opts.Now()
	for polls := 1; ; polls++ {
		instances, err := o.ListInstances(ctx)
		if err != nil {
			return fmt.Errorf("polling instances: %w", err)
		}

		pending := pendingHosts(instances, wanted)
		if len(pending) == 0 {
			logging.Debug(subsystem, "All targets idle after %d polls", polls)
			return nil
		}

		waited := o.opts.Now().Sub(start)
		if o.opts.MaxWait > 0 && waited >= o.opts.MaxWait {
			return &PollTimeoutError{Pending: pending, Waited: waited}
		}

		logging.Debug(subsystem, "Poll %d: %d targets still busy", polls, len(pending))
		fmt.Fprint(o.opts.Out, ".")
		if err := o.opts.Sleep(ctx, o.opts.PollInterval); err != nil {
			return err
		}
	}
}

// pendingHosts returns the sorted names of wanted instances that are busy.
func pendingHosts(instances []provider.Instance, wanted map[string]struct{}) []string {
	var pending []string
	seen := make(map[string]struct{})
	for _, inst := range instances {
		name := inst.FullyQualifiedDomainName
		if _, ok := wanted[name]; !ok || !inst.Busy() {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		pending = append(pending, name)
	}
	sort.Strings(pending)
	return pending
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
