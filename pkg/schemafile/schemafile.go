// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile reads optionalist schemas from YAML, TOML or JSON
// files. A schema file looks like:
//
//	describe: Build the site.
//	showUsageOnError: true
//	unnamed:
//	  example: page
//	  min: 1
//	options:
//	  help:
//	    type: boolean
//	    alias: [h, "?"]
//	    alone: true
//	  output:
//	    required: true
//	    example: dir
//	  jobs: 4
//	  theme: plain
//	  dry-run: true
//
// Options keep the order of the file. As in the Go API, a scalar in place
// of an option body is a shorthand: a string or number declares an option
// with that default and true declares a boolean flag.
//
// Constraints are a list (enumeration), a mapping with min, minExclusive,
// max and maxExclusive (range, or the max count of a multiple boolean) or,
// for string options, a regular expression.
package schemafile

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/yeetrun/optionalist/pkg/optionalist"
	"tailscale.com/util/set"
)

// Format is the syntax of a schema file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf infers the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("cannot infer schema format of %q", path)
}

// Load reads and decodes the schema file at path.
func Load(path string) (optionalist.Schema, error) {
	f, err := FormatOf(path)
	if err != nil {
		return optionalist.Schema{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return optionalist.Schema{}, err
	}
	s, err := Decode(b, f)
	if err != nil {
		return optionalist.Schema{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a schema document. Structural mistakes are reported as
// *optionalist.SchemaError; the option definitions themselves are checked
// by optionalist.Compile.
func Decode(b []byte, f Format) (optionalist.Schema, error) {
	var (
		doc *document
		err error
	)
	switch f {
	case YAML:
		doc, err = decodeYAML(b)
	case JSON:
		doc, err = decodeJSON(b)
	case TOML:
		doc, err = decodeTOML(b)
	default:
		return optionalist.Schema{}, fmt.Errorf("unknown schema format %q", f)
	}
	if err != nil {
		return optionalist.Schema{}, fmt.Errorf("failed to parse %s schema: %w", f, err)
	}
	return doc.schema()
}

// field is one option in file order.
type field struct {
	name  string
	value any
}

// document is the format-independent form of a schema file.
type document struct {
	root    map[string]any
	options []field
}

var (
	rootKeys    = set.Of("describe", "showUsageOnError", "unnamed", "options")
	unnamedKeys = set.Of("min", "max", "example", "describe")
	optionKeys  = set.Of("type", "alias", "alone", "required", "multiple", "default",
		"constraints", "ignoreCase", "autoAdjust", "describe", "example")
	rangeKeys = set.Of("min", "minExclusive", "max", "maxExclusive")
)

func schemaErr(option, format string, args ...any) error {
	return &optionalist.SchemaError{Option: option, Msg: fmt.Sprintf(format, args...)}
}

func checkKeys(m map[string]any, allowed set.Set[string], option, where string) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !allowed.Contains(k) {
			return schemaErr(option, "unknown key %q in %s", k, where)
		}
	}
	return nil
}

func (d *document) schema() (optionalist.Schema, error) {
	var s optionalist.Schema
	if err := checkKeys(d.root, rootKeys, "", "schema"); err != nil {
		return s, err
	}
	var err error
	if s.Describe, err = stringField(d.root, "describe", "", "schema"); err != nil {
		return s, err
	}
	if s.ShowUsageOnError, err = boolField(d.root, "showUsageOnError", "", "schema"); err != nil {
		return s, err
	}
	if v, ok := d.root["unnamed"]; ok && v != nil {
		if s.Unnamed, err = unnamed(v); err != nil {
			return s, err
		}
	}
	for _, f := range d.options {
		v, err := entryValue(f.name, f.value)
		if err != nil {
			return s, err
		}
		s.Add(f.name, v)
	}
	return s, nil
}

func unnamed(v any) (*optionalist.Unnamed, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, schemaErr("", "unnamed must be a mapping: %v", v)
	}
	if err := checkKeys(m, unnamedKeys, "", "unnamed"); err != nil {
		return nil, err
	}
	u := &optionalist.Unnamed{}
	var err error
	if u.Min, err = intField(m, "min"); err != nil {
		return nil, err
	}
	if u.Max, err = intField(m, "max"); err != nil {
		return nil, err
	}
	if u.Example, err = stringField(m, "example", "", "unnamed"); err != nil {
		return nil, err
	}
	if u.Describe, err = stringField(m, "describe", "", "unnamed"); err != nil {
		return nil, err
	}
	return u, nil
}

// entryValue converts an option body. Scalars are passed through as
// shorthand literals.
func entryValue(name string, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	if err := checkKeys(m, optionKeys, name, "option "+name); err != nil {
		return nil, err
	}
	where := "option " + name
	var o optionalist.Option
	t, err := stringField(m, "type", name, where)
	if err != nil {
		return nil, err
	}
	if o.Type, err = optionalist.ParseType(t); err != nil {
		return nil, schemaErr(name, "%v for the %s", err, where)
	}
	if o.Alias, err = aliasField(m, name); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		key string
		dst *bool
	}{
		{"alone", &o.Alone},
		{"required", &o.Required},
		{"multiple", &o.Multiple},
		{"ignoreCase", &o.IgnoreCase},
		{"autoAdjust", &o.AutoAdjust},
	} {
		if *f.dst, err = boolField(m, f.key, name, where); err != nil {
			return nil, err
		}
	}
	if o.Describe, err = stringField(m, "describe", name, where); err != nil {
		return nil, err
	}
	if o.Example, err = stringField(m, "example", name, where); err != nil {
		return nil, err
	}
	o.Default = m["default"]
	if c, ok := m["constraints"]; ok && c != nil {
		if o.Constraints, err = constraints(name, o.Type, c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func constraints(name string, t optionalist.Type, c any) (any, error) {
	switch x := c.(type) {
	case string:
		if t != optionalist.TypeString {
			return nil, schemaErr(name, "a pattern constraint needs a string option: %s", name)
		}
		re, err := regexp.Compile(x)
		if err != nil {
			return nil, schemaErr(name, "invalid pattern for the option %s: %v", name, err)
		}
		return re, nil
	case map[string]any:
		if err := checkKeys(x, rangeKeys, name, "the constraints of option "+name); err != nil {
			return nil, err
		}
		var r optionalist.Range
		for _, b := range []struct {
			key string
			dst **float64
		}{
			{"min", &r.Min},
			{"minExclusive", &r.MinExclusive},
			{"max", &r.Max},
			{"maxExclusive", &r.MaxExclusive},
		} {
			v, ok := x[b.key]
			if !ok {
				continue
			}
			n, ok := number(v)
			if !ok {
				return nil, schemaErr(name, "%s of the option %s must be a number: %v", b.key, name, v)
			}
			*b.dst = &n
		}
		return r, nil
	}
	// Lists go to optionalist as they are; it checks the element types.
	return c, nil
}

func aliasField(m map[string]any, option string) ([]string, error) {
	switch x := m["alias"].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, a := range x {
			s, ok := a.(string)
			if !ok {
				return nil, schemaErr(option, "alias of the option %s must be a string: %v", option, a)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return x, nil
	default:
		return nil, schemaErr(option, "alias of the option %s must be a string or a list: %v", option, x)
	}
}

func stringField(m map[string]any, key, option, where string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", schemaErr(option, "%s in %s must be a string: %v", key, where, v)
	}
	return s, nil
}

func boolField(m map[string]any, key, option, where string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, schemaErr(option, "%s in %s must be true or false: %v", key, where, v)
	}
	return b, nil
}

func intField(m map[string]any, key string) (*int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := number(v)
	if !ok || n != math.Trunc(n) {
		return nil, schemaErr("", "%s in unnamed must be an integer: %v", key, v)
	}
	i := int(n)
	return &i, nil
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
