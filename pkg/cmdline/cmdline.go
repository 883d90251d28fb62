// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline connects an optionalist.Parser to the running process:
// it reads os.Args and, for schemas that ask for it, prints usage errors
// with the help text and exits.
package cmdline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"github.com/yeetrun/optionalist/pkg/pkgmeta"
	"golang.org/x/term"
)

// ErrShown is returned when a usage error was printed and Exit returned
// instead of ending the process. Callers should stop without printing
// anything else.
var ErrShown = errors.New("usage error displayed")

var isTerminalFn = term.IsTerminal

// Env holds the process collaborators. The zero value uses the real
// process.
type Env struct {
	Args   []string  // tokens to parse; nil means os.Args[1:]
	Stderr io.Writer // nil means os.Stderr
	Exit   func(int) // nil means os.Exit
}

func (e Env) args() []string {
	if e.Args != nil {
		return e.Args
	}
	if len(os.Args) < 2 {
		return []string{}
	}
	return os.Args[1:]
}

func (e Env) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

func (e Env) exit(code int) {
	if e.Exit != nil {
		e.Exit(code)
		return
	}
	os.Exit(code)
}

// Parse parses the process arguments with p. If the schema sets
// ShowUsageOnError, a usage error is written to stderr followed by a blank
// line and the help text, and the process exits with status 1.
func (e Env) Parse(p *optionalist.Parser) (optionalist.Result, error) {
	res, err := p.Parse(e.args())
	if err == nil {
		return res, nil
	}
	var ue *optionalist.UsageError
	if !p.ShowUsageOnError() || !errors.As(err, &ue) {
		return nil, err
	}
	w := e.stderr()
	fmt.Fprintf(w, "%s\n\n%s", errorColor(w).Sprint(ue.Msg), p.Help())
	e.exit(1)
	return nil, ErrShown
}

// Compile compiles s for the running program. The usage lines name the
// binary and the help banner takes its name and version from the Go build
// info.
func Compile(s optionalist.Schema) (*optionalist.Parser, error) {
	p, err := optionalist.Compile(s)
	if err != nil {
		return nil, err
	}
	if len(os.Args) > 0 {
		p.Program = filepath.Base(os.Args[0])
	}
	p.Meta = pkgmeta.Binary()
	return p, nil
}

// Parse compiles s with Compile and parses os.Args[1:] against it.
func Parse(s optionalist.Schema) (optionalist.Result, error) {
	p, err := Compile(s)
	if err != nil {
		return nil, err
	}
	return Env{}.Parse(p)
}

// errorColor returns the colour of the error line. Colour is used only
// when w is a terminal and NO_COLOR is unset.
func errorColor(w io.Writer) *color.Color {
	c := color.New(color.FgRed, color.Bold)
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" && isTerminalFn(int(f.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
