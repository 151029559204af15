// Command ktfmt formats subject-language source files in place, following
// spec.md §6.2: a list of files and/or directories (directories are walked
// recursively), a --max-line-length override, --stdin to format one file's
// contents piped in on stdin and written to stdout, and --check to report
// which files are not already formatted without rewriting them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ktfmt/internal/cli"
	"ktfmt/internal/config"
	"ktfmt/pkg/ktfmt"
)

func main() {
	maxLineLength := flag.Int("max-line-length", 0, "override the max line length (default from .ktfmt.toml, or 100)")
	stdin := flag.Bool("stdin", false, "format stdin and write the result to stdout")
	check := flag.Bool("check", false, "report files that aren't formatted, without rewriting them")
	flag.Usage = usage
	flag.Parse()

	if *stdin {
		runStdin(*maxLineLength)
		cli.Exit()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	start := time.Now()
	var files []string
	for _, arg := range args {
		files = append(files, collectFiles(arg)...)
	}

	changed := 0
	for _, path := range files {
		f := formatterFor(path, *maxLineLength)
		if *check {
			ok, err := f.Check(path)
			if err != nil {
				cli.Errorf("%v", err)
				continue
			}
			if !ok {
				cli.Warnf("%s: not formatted", path)
				cli.SetExitStatus(1)
				changed++
			}
			continue
		}

		before, err := os.ReadFile(path)
		if err != nil {
			cli.Errorf("%v", err)
			continue
		}
		if err := f.FormatFile(path); err != nil {
			cli.Errorf("%v", err)
			continue
		}
		after, err := os.ReadFile(path)
		if err == nil && string(before) != string(after) {
			changed++
		}
	}

	fmt.Fprintf(os.Stderr, "ktfmt: %s checked, %s changed, in %s\n",
		humanize.Comma(int64(len(files))), humanize.Comma(int64(changed)), time.Since(start).Round(time.Millisecond))

	cli.Exit()
}

// subjectExt is the subject language's source file extension.
const subjectExt = ".jin"

func collectFiles(root string) []string {
	info, err := os.Stat(root)
	if err != nil {
		cli.Errorf("%v", err)
		return nil
	}
	if !info.IsDir() {
		return []string{root}
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != subjectExt {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		cli.Errorf("walking %s: %v", root, err)
	}
	return out
}

func formatterFor(path string, maxLineLengthFlag int) *ktfmt.Formatter {
	cfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		cli.Errorf("%v", err)
		cfg = config.Config{}
	}
	merged := config.Merge(config.Defaults, cfg)
	if maxLineLengthFlag > 0 {
		merged.MaxLineLength = maxLineLengthFlag
	}
	return ktfmt.New(merged.MaxLineLength, merged.StandardIndent, merged.ContinuationIndent)
}

func runStdin(maxLineLengthFlag int) {
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		cli.Fatalf("reading stdin: %v", err)
	}
	merged := config.Merge(config.Defaults, config.Config{})
	if maxLineLengthFlag > 0 {
		merged.MaxLineLength = maxLineLengthFlag
	}
	f := ktfmt.New(merged.MaxLineLength, merged.StandardIndent, merged.ContinuationIndent)
	out, err := f.Format(string(data))
	if err != nil {
		cli.Fatalf("%v", err)
	}
	fmt.Print(out)
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
usage: ktfmt [--max-line-length N] [--check] <file-or-dir>...
       ktfmt --stdin [--max-line-length N] < input`))
}
