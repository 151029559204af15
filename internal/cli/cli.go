// Package cli carries the exit-status bookkeeping ktfmt's command line uses:
// errors encountered while walking a tree of files accumulate rather than
// aborting the whole run, and the process exits with the worst status seen.
//
// Grounded directly on cmd/jindo/command's Errorf/Fatalf/SetExitStatus/Exit
// idiom, trimmed to a single global run (ktfmt has no subcommand tree) and
// with diagnostics colored via github.com/fatih/color so a terminal reader
// can tell a parse error from a plain informational line at a glance.
package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

var (
	mu         sync.Mutex
	exitStatus int
	errs       *multierror.Error
)

// SetExitStatus raises the process's eventual exit status to n if n is
// worse than what's already recorded (spec.md §6.2: 0 clean, 1 reformatted
// under --check, 2 usage/parse failure).
func SetExitStatus(n int) {
	mu.Lock()
	defer mu.Unlock()
	if n > exitStatus {
		exitStatus = n
	}
}

// ExitStatus returns the worst status recorded so far.
func ExitStatus() int {
	mu.Lock()
	defer mu.Unlock()
	return exitStatus
}

// Errorf records a per-file error (colored red on a terminal) and raises the
// exit status to 2, but lets the run continue to the next file.
func Errorf(format string, args ...any) {
	mu.Lock()
	errs = multierror.Append(errs, fmt.Errorf(format, args...))
	mu.Unlock()
	color.New(color.FgRed).Fprintf(os.Stderr, "ktfmt: "+format+"\n", args...)
	SetExitStatus(2)
}

// Fatalf reports a usage error and terminates immediately; unlike Errorf,
// there is no "next file" to continue to.
func Fatalf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "ktfmt: "+format+"\n", args...)
	os.Exit(2)
}

// Warnf prints an informational diagnostic (yellow) without affecting exit
// status, e.g. "<file>: not formatted" under --check.
func Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

// Errors returns every error accumulated by Errorf so far, joined via
// go-multierror, or nil if none were recorded.
func Errors() error {
	mu.Lock()
	defer mu.Unlock()
	if errs == nil {
		return nil
	}
	return errs.ErrorOrNil()
}

// Exit terminates the process with the recorded exit status.
func Exit() {
	os.Exit(ExitStatus())
}
