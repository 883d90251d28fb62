// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The optionalist command parses arguments against a schema file and prints
// the typed result, or checks schema files for mistakes.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/optionalist/pkg/cmdline"
	"github.com/yeetrun/optionalist/pkg/fileutil"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"github.com/yeetrun/optionalist/pkg/pkgmeta"
	"github.com/yeetrun/optionalist/pkg/render"
	"github.com/yeetrun/optionalist/pkg/schemafile"
	"tailscale.com/types/ptr"
	"tailscale.com/util/must"
)

const programName = "optionalist"

func cliSchema() optionalist.Schema {
	s := optionalist.Schema{
		Describe: `
			Parses command-line arguments against a schema file and prints the
			typed result, or checks schema files for mistakes.

			Schema files are YAML, TOML or JSON. The help banner of a schema
			takes its name and version from the nearest package.toml,
			package.yaml, package.yml or package.json above the schema file.
		`,
		ShowUsageOnError: true,
		Unnamed: &optionalist.Unnamed{
			Example:  "args",
			Describe: "Arguments to parse with the loaded schema. Put them after -- when they start with a hyphen.",
		},
	}
	s.Add("help", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Alias:    []string{"h", "?"},
		Alone:    true,
		Describe: "Show this help.",
	}).Add("version", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Alone:    true,
		Describe: "Show the version.",
	}).Add("schema", optionalist.Option{
		Alias:    []string{"s"},
		Example:  "file",
		Describe: "Schema file to parse the arguments with.",
	}).Add("check", optionalist.Option{
		Multiple: true,
		Example:  "file",
		Describe: "Schema file to check. Repeat to check several files.",
	}).Add("format", optionalist.Option{
		Alias:       []string{"f"},
		Default:     string(render.JSON),
		Constraints: render.FormatNames(),
		IgnoreCase:  true,
		Example:     "format",
		Describe:    "Output format: " + strings.Join(render.FormatNames(), ", ") + ".",
	}).Add("prefix", optionalist.Option{
		Default:  "OPT_",
		Example:  "prefix",
		Describe: "Variable name prefix of the env format.",
	}).Add("program", optionalist.Option{
		Example:  "name",
		Describe: "Program name in the usage lines. Defaults to the schema file name.",
	}).Add("output", optionalist.Option{
		Alias:    []string{"o"},
		Example:  "file",
		Describe: "Write the result to a file instead of stdout.",
	}).Add("usage", optionalist.Option{
		Type:     optionalist.TypeBoolean,
		Describe: "Print the help of the loaded schema instead of parsing.",
	}).Add("jobs", optionalist.Option{
		Type:        optionalist.TypeNumber,
		Default:     4,
		Constraints: optionalist.Range{Min: ptr.To(1.0), Max: ptr.To(64.0)},
		AutoAdjust:  true,
		Example:     "n",
		Describe:    "Number of schema files checked at once.",
	}).Add("verbose", optionalist.Option{
		Type:        optionalist.TypeBoolean,
		Alias:       []string{"v"},
		Multiple:    true,
		Constraints: optionalist.Range{Max: ptr.To(2.0)},
		Describe:    "Log what is going on. Repeat for more.",
	})
	return s
}

var cliParser = must.Get(optionalist.Compile(cliSchema()))

func init() {
	cliParser.Program = programName
	cliParser.Meta = pkgmeta.Binary()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(programName + ": ")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the parsed flags of one invocation.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
	verbose int

	schema  string
	checks  []string
	format  render.Format
	prefix  string
	program string
	output  string
	usage   bool
	jobs    int
	args    []string
}

func (a *app) vlogf(level int, format string, args ...any) {
	if a.verbose >= level {
		a.logger.Printf(format, args...)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	env := cmdline.Env{Args: args, Stderr: stderr, Exit: func(int) {}}
	res, err := env.Parse(cliParser)
	if errors.Is(err, cmdline.ErrShown) {
		return 1
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	switch r := res.(type) {
	case *optionalist.Alone:
		switch r.Name() {
		case "help":
			fmt.Fprint(stdout, r.Help())
		case "version":
			fmt.Fprintln(stdout, versionString())
		}
		return 0
	case *optionalist.Normal:
		a := newApp(r, stdout, stderr)
		if err := a.run(); err != nil {
			if errors.Is(err, errFailed) {
				return 1
			}
			fmt.Fprintln(stderr, color.RedString("Error: %v", err))
			return 1
		}
		return 0
	}
	return 1
}

func versionString() string {
	meta, ok := cliParser.Meta.LookupMeta()
	if !ok || meta.Version == "" {
		return programName + " (devel)"
	}
	return programName + " " + meta.Version
}

func newApp(r *optionalist.Normal, stdout, stderr io.Writer) *app {
	str := func(name string) string {
		if v, ok := r.Get(name); ok {
			return v.String()
		}
		return ""
	}
	checks, _ := r.Get("check")
	jobs, _ := r.Get("jobs")
	verbose, _ := r.Get("verbose")
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		logger:  log.New(stderr, programName+": ", 0),
		verbose: verbose.Count(),
		schema:  str("schema"),
		checks:  checks.Strings(),
		format:  must.Get(render.ParseFormat(str("format"))),
		prefix:  str("prefix"),
		program: str("program"),
		output:  str("output"),
		usage:   r.Has("usage"),
		jobs:    int(jobs.Number()),
		args:    r.Unnamed(),
	}
}

func (a *app) run() error {
	switch {
	case len(a.checks) > 0 && a.schema != "":
		return errors.New("--schema and --check cannot be combined")
	case len(a.checks) > 0:
		if len(a.args) > 0 {
			return fmt.Errorf("unexpected arguments with --check: %s", strings.Join(a.args, " "))
		}
		return a.check()
	case a.schema != "":
		return a.parse()
	}
	return fmt.Errorf("one of --schema or --check is required; try '%s --help'", programName)
}

// errFailed is returned after failures have already been reported.
var errFailed = errors.New("failed")

// parse loads the schema and parses the remaining arguments with it.
func (a *app) parse() error {
	s, err := schemafile.Load(a.schema)
	if err != nil {
		return err
	}
	p, err := optionalist.Compile(s)
	if err != nil {
		return fmt.Errorf("%s: %w", a.schema, err)
	}
	p.Program = a.program
	if p.Program == "" {
		p.Program = strings.TrimSuffix(filepath.Base(a.schema), filepath.Ext(a.schema))
	}
	p.Meta = pkgmeta.Dir(filepath.Dir(a.schema))
	a.vlogf(1, "loaded %s with %d options", a.schema, len(s.Options))

	if a.usage {
		_, err := io.WriteString(a.stdout, p.Help())
		return err
	}

	a.vlogf(2, "parsing %q", a.args)
	res, err := cmdline.Env{Args: a.args, Stderr: a.stderr, Exit: func(int) {}}.Parse(p)
	if errors.Is(err, cmdline.ErrShown) {
		return errFailed
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, res, a.format, render.Options{Prefix: a.prefix}); err != nil {
		return err
	}
	if a.output == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	same, err := fileutil.Identical(a.output, buf.Bytes())
	if err != nil {
		return err
	}
	if same {
		a.vlogf(1, "%s is up to date", a.output)
		return nil
	}
	a.vlogf(1, "writing %s", a.output)
	return fileutil.WriteFile(a.output, buf.Bytes(), 0o644)
}
