// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import "fmt"

// Type is the value type of a named option.
type Type int

const (
	// TypeString is the default type; the option consumes one token verbatim.
	TypeString Type = iota
	// TypeNumber consumes one token and parses it as a finite number.
	TypeNumber
	// TypeBoolean never consumes a token; presence means true.
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a type name as written in a schema file to a Type.
// The empty string means TypeString.
func ParseType(s string) (Type, error) {
	switch s {
	case "", "string":
		return TypeString, nil
	case "number":
		return TypeNumber, nil
	case "boolean":
		return TypeBoolean, nil
	}
	return 0, fmt.Errorf("unknown type: %s", s)
}

// Option is the full descriptor form of a schema entry.
//
// At most one of Alone, Required, Multiple and Default may be set.
//
// Constraints depends on Type:
//   - TypeString: []string (enumeration, see IgnoreCase) or *regexp.Regexp.
//   - TypeNumber: []float64 or []int (enumeration) or Range.
//   - TypeBoolean: only with Multiple, and only Range{Max: ...} as a repeat limit.
type Option struct {
	Type        Type
	Alias       []string
	Alone       bool
	Required    bool
	Multiple    bool
	Default     any
	Constraints any
	IgnoreCase  bool
	AutoAdjust  bool
	Describe    string
	Example     string
}

// Range bounds a number option. At least one field must be set, and Min
// and MinExclusive (likewise Max and MaxExclusive) are mutually exclusive.
type Range struct {
	Min          *float64
	MinExclusive *float64
	Max          *float64
	MaxExclusive *float64
}

// Entry is one named option of a Schema.
//
// Value is either an Option (or *Option), or a shorthand literal:
// a string or number declares an option of that type defaulting to the
// literal, and true declares a boolean flag.
type Entry struct {
	Name  string
	Value any
}

// Unnamed describes the positional arguments. Nil bounds are unbounded.
type Unnamed struct {
	Min      *int
	Max      *int
	Example  string
	Describe string
}

// Schema declares the options a command accepts. The order of Options is
// kept in the generated help.
type Schema struct {
	// Describe is printed in the Description section of the help.
	Describe string
	// ShowUsageOnError asks the process wrapper to print the usage error
	// and the help text to stderr and exit(1) instead of returning.
	ShowUsageOnError bool
	// Unnamed configures positional arguments. When nil they are accepted
	// without bounds and omitted from the help.
	Unnamed *Unnamed
	Options []Entry
}

// Add appends a named entry and returns the schema for chaining.
func (s *Schema) Add(name string, value any) *Schema {
	s.Options = append(s.Options, Entry{Name: name, Value: value})
	return s
}
