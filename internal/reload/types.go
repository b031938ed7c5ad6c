package reload

import (
	"context"
	"fmt"
	"io"
	"time"

	"slreload/internal/provider"
)

// Mode selects how host arguments are matched against instance names.
type Mode int

const (
	// ModePattern treats arguments as shell globs. Patterns that match
	// nothing are ignored.
	ModePattern Mode = iota
	// ModeExact treats arguments as exact names. Every name must exist.
	ModeExact
)

func (m Mode) String() string {
	switch m {
	case ModePattern:
		return "pattern"
	case ModeExact:
		return "exact"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Capabilities describes which kinds of instance a run may touch.
type Capabilities struct {
	// SupportsHardware adds bare-metal hosts to listings and reloads them
	// through the hardware entry point.
	SupportsHardware bool
}

// State is a step of a reload run.
type State string

const (
	StateResolving      State = "Resolving"
	StatePrecheckFailed State = "PrecheckFailed"
	StatePrecheckOK     State = "PrecheckOk"
	StateCancelled      State = "Cancelled"
	StateDispatching    State = "Dispatching"
	StatePolling        State = "Polling"
	StateDone           State = "Done"
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	// Ask shows header, then reads one line of input after prompt.
	// io.EOF means the operator gave no answer. Ask returns ctx.Err()
	// once ctx is done, even while still waiting for input.
	Ask(ctx context.Context, header, prompt string) (string, error)
}

// SleepFunc suspends the caller for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// DefaultPollInterval is the wait between completion polls.
const DefaultPollInterval = 5 * time.Second

// Options configures an Orchestrator.
type Options struct {
	Mode         Mode
	Capabilities Capabilities

	// PollInterval is the wait between completion polls.
	PollInterval time.Duration
	// MaxWait bounds the completion wait; zero waits indefinitely.
	MaxWait time.Duration

	// Out receives the operator-facing output. Defaults to io.Discard.
	Out io.Writer
	// Prompter is required unless every run passes assumeYes.
	Prompter Prompter

	// Sleep and Now are replaced in tests.
	Sleep SleepFunc
	Now   func() time.Time
}

// Outcome is the result of one reload request.
type Outcome struct {
	Host string
	ID   int64
	Kind provider.Kind
	// Err is the provider-reported failure; nil means the reload was
	// accepted.
	Err error
}

// Accepted reports whether the provider took the reload request.
func (o Outcome) Accepted() bool {
	return o.Err == nil
}

// Result summarizes a run.
type Result struct {
	State    State
	Targets  []provider.Instance
	Outcomes []Outcome
}

// Failed returns the outcomes whose reload was rejected.
func (r Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Accepted() {
			out = append(out, o)
		}
	}
	return out
}
