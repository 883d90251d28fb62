// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const fixtureHelp = `Version: optionalist 1.2.3
Usage:
  node optionalist --delta parameter [--alpha parameter] [--bravo b-value] [--foxtrot parameter] [--golf parameter] [--hotel parameter] [--india parameter] [--GOLF parameter] [--] [argument...]
  node optionalist --charlie
  node optionalist --echo parameter

Description:
  UnitTest for optionalist.
    test for indent

Options:
  --alpha parameter
  --bravo, -b b-value
    b value
  --charlie, --charr, -c
  --delta parameter
  --echo parameter
  --foxtrot parameter
  --golf parameter
  --hotel parameter
  --india parameter
  --GOLF parameter
  [--] [argument...]
    arguments for command
`

func TestHelpFixture(t *testing.T) {
	p, err := Compile(fixture())
	if err != nil {
		t.Fatal(err)
	}
	p.Program = "node optionalist"
	p.Meta = StaticMeta{Name: "optionalist", Version: "1.2.3"}
	if diff := cmp.Diff(fixtureHelp, p.Help()); diff != "" {
		t.Errorf("Help() mismatch (-want +got):\n%s", diff)
	}

	for _, args := range [][]string{{"--delta", "x"}, {"-c"}} {
		res, err := p.Parse(args)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(fixtureHelp, res.Help()); diff != "" {
			t.Errorf("Parse(%q).Help() mismatch (-want +got):\n%s", args, diff)
		}
	}
}

func TestHelpLayouts(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		program string
		meta    MetaSource
		want    string
	}{
		{
			name:    "single optional",
			schema:  Schema{Options: []Entry{{"a", Option{}}}},
			program: "prog",
			want: `Usage:
  prog [-a parameter]

Options:
  -a parameter
`,
		},
		{
			name:   "no program",
			schema: Schema{Options: []Entry{{"a", Option{Type: TypeBoolean}}}},
			want: `Usage:
  [-a]

Options:
  -a
`,
		},
		{
			name:   "only positionals",
			schema: Schema{Unnamed: &Unnamed{}},
			meta:   StaticMeta{Name: "tool"},
			want: `Usage:
  tool [--] [unnamed_parameters...]

Options:
  [--] [unnamed_parameters...]
`,
		},
		{
			name: "only alone options",
			schema: Schema{Options: []Entry{
				{"help", Option{Type: TypeBoolean, Alone: true, Alias: []string{"h", "?"}, Describe: "show this"}},
				{"version", Option{Type: TypeBoolean, Alone: true}},
			}},
			program: "prog",
			meta:    StaticMeta{Name: "tool", Version: "0.1.0"},
			want: `Version: tool 0.1.0
Usage:
  prog --help
  prog --version

Options:
  --help, -h, -?
    show this
  --version
`,
		},
		{
			name: "multiline descriptions",
			schema: Schema{
				Describe: "first\n\n  second",
				Options: []Entry{
					{"long", Option{Required: true, Example: "value", Describe: "\n\t\tone\n\t\t  two\n\t\t"}},
				},
			},
			program: "prog",
			want: "Usage:\n" +
				"  prog --long value\n" +
				"\n" +
				"Description:\n" +
				"  first\n" +
				"\n" +
				"    second\n" +
				"\n" +
				"Options:\n" +
				"  --long value\n" +
				"    one\n" +
				"      two\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.schema)
			if err != nil {
				t.Fatal(err)
			}
			p.Program = tt.program
			p.Meta = tt.meta
			if diff := cmp.Diff(tt.want, p.Help()); diff != "" {
				t.Errorf("Help() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// countingMeta counts lookups.
type countingMeta struct {
	n atomic.Int32
}

func (m *countingMeta) LookupMeta() (Meta, bool) {
	m.n.Add(1)
	return Meta{Name: "counted", Version: "1.0.0"}, true
}

func TestHelpRenderedOnce(t *testing.T) {
	p, err := Compile(Schema{Options: []Entry{{"a", ""}}})
	if err != nil {
		t.Fatal(err)
	}
	meta := &countingMeta{}
	p.Meta = meta
	res, err := p.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := meta.n.Load(); got != 0 {
		t.Fatalf("metadata looked up %d times before Help", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Help()
		}()
	}
	wg.Wait()
	if got := meta.n.Load(); got != 1 {
		t.Errorf("metadata looked up %d times, want 1", got)
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   \n\t\n", ""},
		{"one", "  one\n"},
		{"\n    one\n    two\n", "  one\n  two\n"},
		{"\n    one\n      deeper\n    ", "  one\n    deeper\n"},
		{"one\n\n    two", "  one\n\n      two\n"},
		{"    a  \r\n    b", "  a\n  b\n"},
		{"\t\tx\n\t y", "  \tx\n   y\n"},
	}
	for _, tt := range tests {
		if got := indent(tt.in, "  "); got != tt.want {
			t.Errorf("indent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
