// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

// defaultUnnamedExample names the positional arguments when the schema
// does not.
const defaultUnnamedExample = "unnamed_parameters"

// Meta is the package metadata shown in the help banner.
type Meta struct {
	Name    string
	Version string
}

// MetaSource looks up the package metadata. It is consulted only when the
// help text is rendered.
type MetaSource interface {
	LookupMeta() (Meta, bool)
}

// StaticMeta is a MetaSource that always returns itself.
type StaticMeta Meta

func (m StaticMeta) LookupMeta() (Meta, bool) {
	return Meta(m), m.Name != "" || m.Version != ""
}

// Parser is a validated schema ready to parse command lines. It is safe to
// call Parse and Help concurrently; Program and Meta must be set before
// the first call.
type Parser struct {
	// Program is the command name shown in the usage lines. When empty the
	// name from Meta is used.
	Program string
	// Meta provides the name and version for the help banner. Optional.
	Meta MetaSource

	schema Schema
	descs  []*descriptor
	table  aliasTable
}

// Compile validates s and builds its flag table. All errors are
// *SchemaError.
func Compile(s Schema) (*Parser, error) {
	descs, err := normalize(s)
	if err != nil {
		return nil, err
	}
	table, err := buildAliasTable(descs)
	if err != nil {
		return nil, err
	}
	if s.Unnamed != nil {
		u := *s.Unnamed
		u.Min, u.Max = clonePtr(u.Min), clonePtr(u.Max)
		s.Unnamed = &u
	}
	s.Options = nil
	return &Parser{schema: s, descs: descs, table: table}, nil
}

// Parse compiles s and parses args against it.
func Parse(s Schema, args []string) (Result, error) {
	p, err := Compile(s)
	if err != nil {
		return nil, err
	}
	return p.Parse(args)
}

// ShowUsageOnError reports whether the schema asks for usage errors to be
// printed with the help text and the process to exit.
func (p *Parser) ShowUsageOnError() bool {
	return p.schema.ShowUsageOnError
}

// Parse parses args, which must not include the program name. All errors
// are *UsageError.
func (p *Parser) Parse(args []string) (Result, error) {
	st, err := p.scan(args)
	if err != nil {
		return nil, err
	}
	return p.finalize(st)
}

// finalize applies defaults and required checks and validates the
// positional count. None of that happens when an alone option fired.
func (p *Parser) finalize(st *scanState) (Result, error) {
	if d := st.alone; d != nil {
		if len(st.unnamed) > 0 {
			return nil, usageErrorf(st.aloneFlag, "%s must be specified alone.", st.aloneFlag)
		}
		return &Alone{
			name:  d.name,
			key:   d.key,
			flag:  st.aloneFlag,
			value: st.values[d.key],
			help:  helpText{p: p},
		}, nil
	}

	for _, d := range p.descs {
		if _, ok := st.values[d.key]; ok {
			continue
		}
		switch d.mode {
		case modeRequired:
			return nil, usageErrorf(d.flag, "%s required", d.flag)
		case modeDefault:
			st.values[d.key] = d.def
		case modeMultiple:
			st.values[d.key] = d.empty()
		}
	}

	if u := p.schema.Unnamed; u != nil {
		example := u.Example
		if example == "" {
			example = defaultUnnamedExample
		}
		if u.Min != nil && len(st.unnamed) < *u.Min {
			return nil, usageErrorf("", "At least %d %s required.", *u.Min, example)
		}
		if u.Max != nil && len(st.unnamed) > *u.Max {
			return nil, usageErrorf("", "Too many %s specified(up to %d).", example, *u.Max)
		}
	}

	order := make([]string, 0, len(st.values))
	for _, d := range p.descs {
		if _, ok := st.values[d.key]; ok {
			order = append(order, d.key)
		}
	}
	return &Normal{
		values:  st.values,
		order:   order,
		unnamed: st.unnamed,
		help:    helpText{p: p},
	}, nil
}
