// Package ktfmt is the public entry point named in spec.md §6.1: construct
// a Formatter once with the layout parameters, then call Format or
// FormatFile as many times as needed. Each call is independent — no state
// survives between them (spec.md §8's reset-between-calls property), so a
// single Formatter is safe to reuse and to share across goroutines.
package ktfmt

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/renameio"

	"ktfmt/internal/lang/parser"
	"ktfmt/pkg/preprocess"
	"ktfmt/pkg/printer"
	"ktfmt/pkg/scan"
)

// Formatter renders subject-language source through the parse → scan →
// preprocess → print pipeline of spec.md §2.
type Formatter struct {
	maxLineLength      int
	standardIndent     int
	continuationIndent int
}

// New constructs a Formatter. continuationIndent is used for line-wrapped
// continuations inside expressions (spec.md §4.3); standardIndent is the
// per-block step used everywhere else.
func New(maxLineLength, standardIndent, continuationIndent int) *Formatter {
	return &Formatter{
		maxLineLength:      maxLineLength,
		standardIndent:     standardIndent,
		continuationIndent: continuationIndent,
	}
}

// ParseError reports a source file that the TreeProvider collaborator
// (internal/lang/parser) could not parse; Format refuses to guess at
// formatting malformed source.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Format parses source and returns its formatted text.
func (f *Formatter) Format(source string) (string, error) {
	file, err := parser.Parse(bytes.NewReader([]byte(source)))
	if err != nil {
		return "", &ParseError{Err: err}
	}

	registry := scan.New()
	raw := registry.Scan(file)
	resolved := preprocess.Run(raw)

	p := printer.New(f.maxLineLength, f.standardIndent, f.continuationIndent)
	return p.Print(resolved), nil
}

// FormatFile formats the file at path in place, via an atomic
// write-then-rename (github.com/google/renameio) so a crash or concurrent
// reader never observes a half-written file.
func (f *Formatter) FormatFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := f.Format(string(data))
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	if out == string(data) {
		return nil
	}
	return renameio.WriteFile(path, []byte(out), 0o644)
}

// Check reports whether the file at path is already formatted, without
// modifying it (spec.md §6.2's --check flag).
func (f *Formatter) Check(path string) (formatted bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, err := f.Format(string(data))
	if err != nil {
		return false, &ParseError{Path: path, Err: err}
	}
	return out == string(data), nil
}
