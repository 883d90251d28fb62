// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render writes a parse result in a machine-readable form.
//
// A normal result becomes
//
//	{"options": {"output": "site", "jobs": 4}, "unnamed": ["index.md"]}
//
// and an alone result
//
//	{"alone": {"name": "help", "flag": "-h", "value": true}}
//
// Options keep schema order in every format except env, which has no
// nesting and flattens the same data into prefixed variables.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yeetrun/optionalist/pkg/env"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"tailscale.com/util/set"
)

// Format is an output syntax.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	Env  Format = "env"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, TOML, Env}

// FormatNames returns the names of Formats, for use as an enumeration.
func FormatNames() []string {
	out := make([]string, len(Formats))
	for i, f := range Formats {
		out[i] = string(f)
	}
	return out
}

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(FormatNames(), ", "))
}

// Options tune the output.
type Options struct {
	// Prefix is prepended to every variable name in env output.
	Prefix string
}

// Write renders res to w.
func Write(w io.Writer, res optionalist.Result, f Format, o Options) error {
	switch f {
	case JSON:
		return writeJSON(w, tree(res))
	case YAML:
		return writeYAML(w, tree(res))
	case TOML:
		return writeTOML(w, tree(res))
	case Env:
		vars, err := envVars(res, o.Prefix)
		if err != nil {
			return err
		}
		return env.Marshal(w, vars)
	}
	return fmt.Errorf("unknown format %q", f)
}

// pair is one member of an object.
type pair struct {
	key   string
	value any
}

// object is a mapping that keeps insertion order in every encoder.
type object []pair

func tree(res optionalist.Result) object {
	switch r := res.(type) {
	case *optionalist.Alone:
		return object{{"alone", object{
			{"name", r.Name()},
			{"flag", r.Flag()},
			{"value", r.Value().Interface()},
		}}}
	case *optionalist.Normal:
		opts := object{}
		for _, k := range r.Names() {
			v, _ := r.Get(k)
			opts = append(opts, pair{k, v.Interface()})
		}
		return object{
			{"options", opts},
			{"unnamed", r.Unnamed()},
		}
	}
	return object{}
}

// envVars flattens res. Multiple values and positionals are joined with
// newlines.
func envVars(res optionalist.Result, prefix string) ([]env.Var, error) {
	var vars []env.Var
	seen := make(set.Set[string])
	add := func(key, value string) error {
		name := env.Name(prefix, key)
		if seen.Contains(name) {
			return fmt.Errorf("variable %s is defined twice", name)
		}
		seen.Add(name)
		vars = append(vars, env.Var{Name: name, Value: value})
		return nil
	}
	switch r := res.(type) {
	case *optionalist.Alone:
		if err := add("alone", r.Name()); err != nil {
			return nil, err
		}
		if err := add(r.Key(), envValue(r.Value())); err != nil {
			return nil, err
		}
	case *optionalist.Normal:
		for _, k := range r.Names() {
			v, _ := r.Get(k)
			if err := add(k, envValue(v)); err != nil {
				return nil, err
			}
		}
		if err := add("unnamed", strings.Join(r.Unnamed(), "\n")); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

func envValue(v optionalist.Value) string {
	switch v.Kind() {
	case optionalist.KindStrings:
		return strings.Join(v.Strings(), "\n")
	case optionalist.KindNumbers:
		nums := v.Numbers()
		out := make([]string, len(nums))
		for i, n := range nums {
			out[i] = optionalist.NumberValue(n).String()
		}
		return strings.Join(out, "\n")
	}
	return v.String()
}

// sortedScalarsFirst orders members so that nested objects come last, as
// TOML requires for tables. The relative order is otherwise kept.
func sortedScalarsFirst(o object) object {
	out := slices.Clone(o)
	slices.SortStableFunc(out, func(a, b pair) int {
		_, ai := a.value.(object)
		_, bi := b.value.(object)
		switch {
		case ai == bi:
			return 0
		case bi:
			return -1
		}
		return 1
	})
	return out
}
