// Package provider defines the contract between the reload orchestrator and
// the remote infrastructure API that owns the instances.
package provider

import (
	"context"
)

// Kind distinguishes virtual instances from bare-metal hosts.
type Kind string

const (
	KindVirtual  Kind = "virtual"
	KindHardware Kind = "hardware"
)

// Transaction is the read-only projection of an operation in progress on an
// instance.
type Transaction struct {
	ID             int64  `json:"id,omitempty" yaml:"id,omitempty"`
	StatusName     string `json:"status" yaml:"status"`
	ElapsedSeconds int64  `json:"elapsedSeconds,omitempty" yaml:"elapsedSeconds,omitempty"`
}

// Instance is a provisioned compute resource as reported by a listing call.
type Instance struct {
	ID                       int64  `json:"id" yaml:"id"`
	FullyQualifiedDomainName string `json:"fullyQualifiedDomainName" yaml:"fullyQualifiedDomainName"`
	Hostname                 string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Domain                   string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Datacenter               string `json:"datacenter,omitempty" yaml:"datacenter,omitempty"`
	PrimaryIP                string `json:"primaryIp,omitempty" yaml:"primaryIp,omitempty"`
	Kind                     Kind   `json:"kind" yaml:"kind"`

	// ActiveTransaction is non-nil iff an operation is currently in
	// progress on the instance.
	ActiveTransaction *Transaction `json:"activeTransaction,omitempty" yaml:"activeTransaction,omitempty"`
}

// Busy reports whether the instance carries an in-flight transaction.
func (i Instance) Busy() bool {
	return i.ActiveTransaction != nil
}

// TransactionStatus returns the human-readable label of the active
// transaction, or an empty string when the instance is idle.
func (i Instance) TransactionStatus() string {
	if i.ActiveTransaction == nil {
		return ""
	}
	return i.ActiveTransaction.StatusName
}

// SSHKey is a credential registered on the caller's account.
type SSHKey struct {
	ID    int64  `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Provider is the remote API consumed by the orchestrator. Every call is a
// blocking round trip; implementations must honor ctx cancellation.
//
// Provider-reported failures are returned as *APIError so callers can tell
// them apart from transport problems.
type Provider interface {
	// ListVirtualInstances returns every virtual instance on the account.
	ListVirtualInstances(ctx context.Context) ([]Instance, error)

	// ListHardwareInstances returns every bare-metal host on the account.
	ListHardwareInstances(ctx context.Context) ([]Instance, error)

	// ListSSHKeys returns every SSH key visible to the caller.
	ListSSHKeys(ctx context.Context) ([]SSHKey, error)

	// ReloadVirtualInstance reprovisions the OS of a virtual instance,
	// installing the given SSH keys.
	ReloadVirtualInstance(ctx context.Context, id int64, sshKeyIDs []int64) error

	// ReloadHardwareInstance reprovisions the OS of a bare-metal host,
	// installing the given SSH keys.
	ReloadHardwareInstance(ctx context.Context, id int64, sshKeyIDs []int64) error
}

// KeyIDs extracts the identifiers of the given keys, preserving order.
func KeyIDs(keys []SSHKey) []int64 {
	ids := make([]int64, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k.ID)
	}
	return ids
}
