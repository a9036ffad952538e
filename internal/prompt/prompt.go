// Package prompt implements the interactive confirmation flow used when
// a host fails its reachability check or an unregistered host is named
// on the command line. The flow is a small state machine over a reader
// and writer pair, so tests drive it with scripted input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Choice is the resolution of a failed-probe prompt.
type Choice int

const (
	Accept Choice = iota // commit the host despite the failed probe
	Replace              // substitute a different address
	Cancel               // abort with no mutation
)

// Prompter reads choices from in and writes questions to out. Reads
// block with no timeout; one instance is active per process.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line verbatim: host identity
// is case sensitive, so no folding happens here. EOF reports ok=false
// and is treated by callers as a cancel.
func (p *Prompter) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// ConfirmRegister asks whether to register an unknown host now. Anything
// other than yes or no re-prompts; EOF counts as no.
func (p *Prompter) ConfirmRegister(host string) bool {
	for {
		fmt.Fprintf(p.out, "%s is not registered. Register it now? [y/n] ", host)
		answer, ok := p.readLine()
		if !ok {
			fmt.Fprintln(p.out)
			return false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// FailedProbeChoice presents the three-way choice after a failed
// reachability probe: accept anyway, supply a replacement address, or
// cancel. Invalid input re-prompts without consuming a choice. For
// Replace the substitute address is returned alongside the choice; an
// empty replacement re-prompts.
func (p *Prompter) FailedProbeChoice(host string) (Choice, string) {
	for {
		fmt.Fprintf(p.out, "%s did not respond. [a]dd anyway, [r]eplace address, [c]ancel: ", host)
		answer, ok := p.readLine()
		if !ok {
			fmt.Fprintln(p.out)
			return Cancel, ""
		}
		switch strings.ToLower(answer) {
		case "a", "add":
			return Accept, ""
		case "c", "cancel":
			return Cancel, ""
		case "r", "replace":
			fmt.Fprint(p.out, "New address: ")
			replacement, ok := p.readLine()
			if !ok {
				fmt.Fprintln(p.out)
				return Cancel, ""
			}
			if replacement == "" {
				continue
			}
			return Replace, replacement
		}
	}
}
