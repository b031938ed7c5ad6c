package reload

import (
	"sort"

	"slreload/internal/glob"
	"slreload/internal/provider"
	"slreload/pkg/logging"
)

// ResolveTargets selects the instances named by hosts.
//
// In ModePattern an instance is kept when its FQDN matches any pattern;
// each instance appears at most once and patterns matching nothing are
// ignored. In ModeExact an instance is kept when its FQDN equals one of
// the names, and any name left unresolved yields *TargetsNotFoundError.
// Listing order is preserved in both modes.
func ResolveTargets(mode Mode, hosts []string, all []provider.Instance) ([]provider.Instance, error) {
	if mode == ModeExact {
		return resolveExact(hosts, all)
	}

	matcher := glob.Compile(hosts)
	var targets []provider.Instance
	for _, inst := range all {
		if i := matcher.Match(inst.FullyQualifiedDomainName); i >= 0 {
			logging.Debug(subsystem, "%s matched %q", inst.FullyQualifiedDomainName, matcher.Pattern(i))
			targets = append(targets, inst)
		}
	}
	return targets, nil
}

func resolveExact(hosts []string, all []provider.Instance) ([]provider.Instance, error) {
	requested := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		requested[h] = struct{}{}
	}

	var targets []provider.Instance
	found := make(map[string]struct{}, len(hosts))
	for _, inst := range all {
		name := inst.FullyQualifiedDomainName
		if _, ok := requested[name]; ok {
			targets = append(targets, inst)
			found[name] = struct{}{}
		}
	}

	if len(found) < len(requested) {
		var missing []string
		for h := range requested {
			if _, ok := found[h]; !ok {
				missing = append(missing, h)
			}
		}
		sort.Strings(missing)
		return nil, &TargetsNotFoundError{Hosts: missing}
	}
	return targets, nil
}

// CheckNoActiveTransactions fails with *ActiveTransactionsError when any
// target has an operation in flight.
func CheckNoActiveTransactions(targets []provider.Instance) error {
	var busy []BusyHost
	for _, t := range targets {
		if t.Busy() {
			busy = append(busy, BusyHost{
				Host:   t.FullyQualifiedDomainName,
				Status: t.TransactionStatus(),
			})
		}
	}
	if len(busy) > 0 {
		return &ActiveTransactionsError{Busy: busy}
	}
	return nil
}

// targetNames returns the FQDNs of targets in order.
func targetNames(targets []provider.Instance) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.FullyQualifiedDomainName)
	}
	return names
}
