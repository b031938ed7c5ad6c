package reload

import (
	"fmt"
	"strings"
	"time"
)

// TargetsNotFoundError is returned in exact mode when some requested host
// names do not exist on the account. No reload has been issued.
type TargetsNotFoundError struct {
	// Hosts are the unresolved names, sorted.
	Hosts []string
}

func (e *TargetsNotFoundError) Error() string {
	return "Could not find hosts on SL: " + strings.Join(e.Hosts, ", ")
}

// BusyHost is a target that already has an operation in flight.
type BusyHost struct {
	Host   string
	Status string
}

// ActiveTransactionsError aborts a run before any reload is issued because
// at least one target is busy.
type ActiveTransactionsError struct {
	Busy []BusyHost
}

func (e *ActiveTransactionsError) Error() string {
	lines := make([]string, 0, len(e.Busy)+1)
	lines = append(lines, "Aborting due to active transactions in target list:")
	for _, b := range e.Busy {
		lines = append(lines, fmt.Sprintf("%s: %s", b.Host, b.Status))
	}
	return strings.Join(lines, "\n")
}

// PollTimeoutError is returned when the configured maximum wait elapses
// while some targets still report an active transaction.
type PollTimeoutError struct {
	Pending []string
	Waited  time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("gave up after %s waiting for %d host(s) to finish reloading: %s",
		e.Waited.Round(time.Second), len(e.Pending), strings.Join(e.Pending, ", "))
}
