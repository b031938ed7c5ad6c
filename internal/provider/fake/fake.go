// Package fake provides an in-memory provider for tests and dry runs.
package fake

import (
	"context"
	"fmt"
	"sync"

	"slreload/internal/provider"
)

// ReloadStatus is the transaction label a reloaded instance reports while
// it is still busy.
const ReloadStatus = "RELOAD_OS"

// Method names recorded in Calls.
const (
	MethodListVirtual    = "ListVirtualInstances"
	MethodListHardware   = "ListHardwareInstances"
	MethodListSSHKeys    = "ListSSHKeys"
	MethodReloadVirtual  = "ReloadVirtualInstance"
	MethodReloadHardware = "ReloadHardwareInstance"
)

// Call is one recorded provider invocation.
type Call struct {
	Method    string
	ID        int64
	SSHKeyIDs []int64
}

// Config describes the account the fake provider simulates.
type Config struct {
	Virtual  []provider.Instance
	Hardware []provider.Instance
	SSHKeys  []provider.SSHKey

	// ReloadBusyPolls is how many listing rounds after its reload an
	// instance keeps reporting an active transaction. A round starts with
	// every ListVirtualInstances call, which each poll iteration makes
	// first. Negative means the instance never settles.
	ReloadBusyPolls int

	// ReloadErrors makes the reload of the given instance id fail.
	ReloadErrors map[int64]error

	// ListError makes every listing call fail.
	ListError error
}

// Provider is a fake provider.Provider backed by Config.
type Provider struct {
	mu       sync.Mutex
	config   Config
	rounds   int
	settleAt map[int64]int
	calls    []Call
}

var _ provider.Provider = (*Provider)(nil)

// New creates a fake provider. Instances in cfg are copied, so the caller
// may reuse its slices.
func New(cfg Config) *Provider {
	cfg.Virtual = cloneInstances(cfg.Virtual, provider.KindVirtual)
	cfg.Hardware = cloneInstances(cfg.Hardware, provider.KindHardware)
	return &Provider{
		config:   cfg,
		settleAt: make(map[int64]int),
	}
}

func cloneInstances(in []provider.Instance, kind provider.Kind) []provider.Instance {
	out := make([]provider.Instance, len(in))
	for i, inst := range in {
		if inst.ActiveTransaction != nil {
			tx := *inst.ActiveTransaction
			inst.ActiveTransaction = &tx
		}
		if inst.Kind == "" {
			inst.Kind = kind
		}
		out[i] = inst
	}
	return out
}

// Calls returns a copy of every call recorded so far.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}

// CallCount returns how many times the given method was invoked.
func (p *Provider) CallCount(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// ReloadCalls returns only the reload invocations, in dispatch order.
func (p *Provider) ReloadCalls() []Call {
	var out []Call
	for _, c := range p.Calls() {
		if c.Method == MethodReloadVirtual || c.Method == MethodReloadHardware {
			out = append(out, c)
		}
	}
	return out
}

func (p *Provider) record(c Call) {
	p.calls = append(p.calls, c)
}

// ListVirtualInstances implements provider.Provider.
func (p *Provider) ListVirtualInstances(ctx context.Context) ([]provider.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: MethodListVirtual})
	if err := p.listErr(ctx); err != nil {
		return nil, err
	}
	p.tick()
	return cloneInstances(p.config.Virtual, provider.KindVirtual), nil
}

// ListHardwareInstances implements provider.Provider.
func (p *Provider) ListHardwareInstances(ctx context.Context) ([]provider.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: MethodListHardware})
	if err := p.listErr(ctx); err != nil {
		return nil, err
	}
	return cloneInstances(p.config.Hardware, provider.KindHardware), nil
}

// ListSSHKeys implements provider.Provider.
func (p *Provider) ListSSHKeys(ctx context.Context) ([]provider.SSHKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record(Call{Method: MethodListSSHKeys})
	if err := p.listErr(ctx); err != nil {
		return nil, err
	}
	out := make([]provider.SSHKey, len(p.config.SSHKeys))
	copy(out, p.config.SSHKeys)
	return out, nil
}

// ReloadVirtualInstance implements provider.Provider.
func (p *Provider) ReloadVirtualInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	return p.reload(ctx, MethodReloadVirtual, p.config.Virtual, id, sshKeyIDs)
}

// ReloadHardwareInstance implements provider.Provider.
func (p *Provider) ReloadHardwareInstance(ctx context.Context, id int64, sshKeyIDs []int64) error {
	return p.reload(ctx, MethodReloadHardware, p.config.Hardware, id, sshKeyIDs)
}

func (p *Provider) reload(ctx context.Context, method string, pool []provider.Instance, id int64, sshKeyIDs []int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]int64, len(sshKeyIDs))
	copy(keys, sshKeyIDs)
	p.record(Call{Method: method, ID: id, SSHKeyIDs: keys})

	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := p.config.ReloadErrors[id]; ok {
		return err
	}

	for i := range pool {
		if pool[i].ID != id {
			continue
		}
		switch {
		case p.config.ReloadBusyPolls == 0:
			return nil
		case p.config.ReloadBusyPolls < 0:
			p.settleAt[id] = -1
		default:
			p.settleAt[id] = p.rounds + p.config.ReloadBusyPolls + 1
		}
		pool[i].ActiveTransaction = &provider.Transaction{StatusName: ReloadStatus}
		return nil
	}
	return &provider.APIError{
		Code:       "SoftLayer_Exception_ObjectNotFound",
		Message:    fmt.Sprintf("Unable to find object with id of '%d'.", id),
		StatusCode: 404,
	}
}

// tick starts a new listing round and clears the transaction of every
// reloaded instance that has settled. Callers hold p.mu.
func (p *Provider) tick() {
	p.rounds++
	for id, at := range p.settleAt {
		if at < 0 || p.rounds < at {
			continue
		}
		delete(p.settleAt, id)
		clearTransaction(p.config.Virtual, id)
		clearTransaction(p.config.Hardware, id)
	}
}

func clearTransaction(pool []provider.Instance, id int64) {
	for i := range pool {
		if pool[i].ID == id {
			pool[i].ActiveTransaction = nil
		}
	}
}

func (p *Provider) listErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.config.ListError
}
