package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"slreload/internal/reload"
)

// LinePrompter reads answers line by line from a plain reader. It is used
// when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// pending carries the result of a read that outlived a cancelled Ask.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

var _ reload.Prompter = (*LinePrompter)(nil)

// NewLinePrompter creates a prompter reading from in and writing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask writes header and prompt, then reads one line. A final line without
// a newline is still an answer; no input at all yields io.EOF. The read
// runs in the background so a done ctx ends the wait; the line it
// eventually yields answers the next Ask.
func (p *LinePrompter) Ask(ctx context.Context, header, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, header+prompt); err != nil {
		return "", err
	}

	if p.pending == nil {
		p.pending = make(chan lineResult, 1)
		go func(ch chan<- lineResult) {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}(p.pending)
	}

	var res lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-p.pending:
		p.pending = nil
	}

	if res.err != nil {
		if errors.Is(res.err, io.EOF) && res.line != "" {
			return strings.TrimRight(res.line, "\r\n"), nil
		}
		return "", res.err
	}
	return strings.TrimRight(res.line, "\r\n"), nil
}

// ReadlinePrompter asks on an interactive terminal with line editing.
// Ctrl+C and Ctrl+D both count as no answer.
type ReadlinePrompter struct {
	out io.Writer
}

var _ reload.Prompter = (*ReadlinePrompter)(nil)

// Ask implements reload.Prompter. A done ctx closes the readline instance,
// which ends the pending read.
func (p *ReadlinePrompter) Ask(ctx context.Context, header, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, header); err != nil {
		return "", err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdout:          p.out,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			rl.Close()
		case <-done:
		}
	}()

	line, err := rl.Readline()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

// NewPrompter picks a readline prompter when in is a terminal and a plain
// line prompter otherwise.
func NewPrompter(in *os.File, out io.Writer) reload.Prompter {
	if readline.IsTerminal(int(in.Fd())) {
		return &ReadlinePrompter{out: out}
	}
	return NewLinePrompter(in, out)
}
