package cli

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"

	"slreload/internal/provider"
)

// Spinner is the part of a progress indicator the CLI drives.
type Spinner interface {
	Start(suffix string)
	Stop()
}

type terminalSpinner struct {
	s *spinner.Spinner
}

func (t *terminalSpinner) Start(suffix string) {
	t.s.Suffix = " " + suffix
	t.s.Start()
}

func (t *terminalSpinner) Stop() {
	t.s.Stop()
}

type noopSpinner struct{}

func (noopSpinner) Start(string) {}
func (noopSpinner) Stop()        {}

// NewSpinner returns a spinner drawing on out, or one that does nothing
// when quiet is set or out is not a terminal.
func NewSpinner(out io.Writer, quiet bool) Spinner {
	f, ok := out.(*os.File)
	if quiet || !ok || !readline.IsTerminal(int(f.Fd())) {
		return noopSpinner{}
	}
	return &terminalSpinner{
		s: spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out)),
	}
}

// ProgressProvider shows a spinner while listing calls run. Once the first
// reload has been dispatched it stays silent so the spinner never mixes
// with the completion dots on the terminal.
type ProgressProvider struct {
	provider.Provider
	spinner Spinner

	mu         sync.Mutex
	dispatched bool
}

// NewProgressProvider wraps p with spinner feedback.
func NewProgressProvider(p provider.Provider, s Spinner) *ProgressProvider {
	return &ProgressProvider{Provider: p, spinner: s}
}

func (p *ProgressProvider) spin(suffix string) func() {
	p.mu.Lock()
	quiet := p.dispatched
	p.mu.Unlock()
	if quiet {
		return func() {}
	}
	p.spinner.Start(suffix)
	return p.spinner.Stop
}

// ListVirtualInstances implements provider.Provider.
func (p *ProgressProvider) ListVirtualInstances(ctx context.Context) ([]provider.Instance, error) {
	defer p.spin("Listing virtual instances...")()
	return p.Provider.ListVirtualInstances(ctx)
}

// ListHardwareInstances implements provider.Provider.
func (p *ProgressProvider) ListHardwareInstances(ctx context.Context) ([]provider.Instance, error) {
	defer p.spin("Listing bare-metal hosts...")()
	return p.Provider.ListHardwareInstances(ctx)
}

// ListSSHKeys implements provider.Provider.
func (p *ProgressProvider) ListSSHKeys(ctx context.Context) ([]provider.SSHKey, error) {
	defer p.spin("Listing SSH keys...")()
	return p.Provider.ListSSHKeys(ctx)
}

// ReloadVirtualInstance implements provider.Provider.
func (p *ProgressProvider) ReloadVirtualInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	p.markDispatched()
	return p.Provider.ReloadVirtualInstance(ctx, id, sshKeyIDs)
}

// ReloadHardwareInstance implements provider.Provider.
func (p *ProgressProvider) ReloadHardwareInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	p.markDispatched()
	return p.Provider.ReloadHardwareInstance(ctx, id, sshKeyIDs)
}

func (p *ProgressProvider) markDispatched() {
	p.mu.Lock()
	p.dispatched = true
	p.mu.Unlock()
}
