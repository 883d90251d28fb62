// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"fmt"
	"strings"
)

// defaultExample is the value placeholder of options without an Example.
const defaultExample = "parameter"

// usage returns the flag with its value placeholder, e.g. "--out file".
func (d *descriptor) usage() string {
	return d.flag + d.placeholder()
}

func (d *descriptor) placeholder() string {
	if d.typ == TypeBoolean {
		return ""
	}
	if d.example == "" {
		return " " + defaultExample
	}
	return " " + d.example
}

func (p *Parser) unnamedUsage() string {
	example := p.schema.Unnamed.Example
	if example == "" {
		example = defaultUnnamedExample
	}
	return fmt.Sprintf("[%s] [%s...]", endOfOptions, example)
}

// Help renders the usage text: an optional version banner, one usage line
// for the regular options followed by one per alone option, the command
// description and the per-option descriptions.
func (p *Parser) Help() string {
	var b strings.Builder

	var meta Meta
	var haveMeta bool
	if p.Meta != nil {
		meta, haveMeta = p.Meta.LookupMeta()
	}
	if haveMeta && meta.Name != "" && meta.Version != "" {
		fmt.Fprintf(&b, "Version: %s %s\n", meta.Name, meta.Version)
	}
	program := p.Program
	if program == "" {
		program = meta.Name
	}

	var required, optional, alone []string
	for _, d := range p.descs {
		switch d.mode {
		case modeAlone:
			alone = append(alone, d.usage())
		case modeRequired:
			required = append(required, d.usage())
		default:
			optional = append(optional, "["+d.usage()+"]")
		}
	}
	var lines []string
	if len(required)+len(optional) > 0 || p.schema.Unnamed != nil {
		line := append(required, optional...)
		if p.schema.Unnamed != nil {
			line = append(line, p.unnamedUsage())
		}
		lines = append(lines, strings.Join(line, " "))
	}
	lines = append(lines, alone...)

	b.WriteString("Usage:\n")
	for _, line := range lines {
		if program == "" {
			fmt.Fprintf(&b, "  %s\n", line)
		} else {
			fmt.Fprintf(&b, "  %s %s\n", program, line)
		}
	}

	if desc := indent(p.schema.Describe, "  "); desc != "" {
		b.WriteString("\nDescription:\n")
		b.WriteString(desc)
	}

	b.WriteString("\nOptions:\n")
	for _, d := range p.descs {
		fmt.Fprintf(&b, "  %s%s\n", strings.Join(d.flags(), ", "), d.placeholder())
		b.WriteString(indent(d.describe, "    "))
	}
	if u := p.schema.Unnamed; u != nil {
		fmt.Fprintf(&b, "  %s\n", p.unnamedUsage())
		b.WriteString(indent(u.Describe, "    "))
	}
	return b.String()
}

// indent re-indents a multi-line description. Leading and trailing blank
// lines are dropped, the whitespace prefix shared by all non-blank lines is
// replaced by prefix, and deeper indentation is kept relative to it.
func indent(text, prefix string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	common := leadingSpace(lines[0])
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		common = commonPrefix(common, leadingSpace(line))
	}

	var b strings.Builder
	for _, line := range lines {
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(strings.TrimPrefix(line, common))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
