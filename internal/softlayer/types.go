package softlayer

import (
	"slreload/internal/provider"
)

// Object masks limit the listing payloads to the properties the
// orchestrator and the list command read.
const (
	virtualGuestMask   = "mask[id,hostname,domain,fullyQualifiedDomainName,primaryIpAddress,datacenter[name],activeTransaction[id,elapsedSeconds,transactionStatus[name]]]"
	hardwareServerMask = "mask[id,hostname,domain,fullyQualifiedDomainName,primaryIpAddress,hardwareStatusId,datacenter[name],activeTransaction[id,elapsedSeconds,transactionStatus[name]]]"
	sshKeyMask         = "mask[id,label]"
)

// reloadMode is the first reloadOperatingSystem parameter. FORCE skips the
// confirmation token round trip.
const reloadMode = "FORCE"

type location struct {
	Name string `json:"name"`
}

type transactionStatus struct {
	Name string `json:"name"`
}

type transaction struct {
	ID                int64              `json:"id"`
	ElapsedSeconds    int64              `json:"elapsedSeconds"`
	TransactionStatus *transactionStatus `json:"transactionStatus"`
}

// computeInstance covers both SoftLayer_Virtual_Guest and
// SoftLayer_Hardware_Server as far as the masks above select them.
type computeInstance struct {
	ID                       int64        `json:"id"`
	Hostname                 string       `json:"hostname"`
	Domain                   string       `json:"domain"`
	FullyQualifiedDomainName string       `json:"fullyQualifiedDomainName"`
	PrimaryIPAddress         string       `json:"primaryIpAddress"`
	HardwareStatusID         *int64       `json:"hardwareStatusId"`
	Datacenter               *location    `json:"datacenter"`
	ActiveTransaction        *transaction `json:"activeTransaction"`
}

func (c computeInstance) toInstance(kind provider.Kind) provider.Instance {
	inst := provider.Instance{
		ID:                       c.ID,
		FullyQualifiedDomainName: c.FullyQualifiedDomainName,
		Hostname:                 c.Hostname,
		Domain:                   c.Domain,
		PrimaryIP:                c.PrimaryIPAddress,
		Kind:                     kind,
	}
	if c.HardwareStatusID != nil {
		inst.Kind = provider.KindHardware
	}
	if c.Datacenter != nil {
		inst.Datacenter = c.Datacenter.Name
	}
	if c.ActiveTransaction != nil {
		inst.ActiveTransaction = &provider.Transaction{
			ID:             c.ActiveTransaction.ID,
			ElapsedSeconds: c.ActiveTransaction.ElapsedSeconds,
		}
		if c.ActiveTransaction.TransactionStatus != nil {
			inst.ActiveTransaction.StatusName = c.ActiveTransaction.TransactionStatus.Name
		}
	}
	return inst
}

type sshKey struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// reloadConfig is the SoftLayer_Container_Hardware_Server_Configuration
// subset sent with a reload.
type reloadConfig struct {
	SSHKeyIDs []int64 `json:"sshKeyIds"`
}

type parameters struct {
	Parameters []interface{} `json:"parameters"`
}

// apiErrorBody is the body SoftLayer returns with non-2xx responses.
type apiErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
