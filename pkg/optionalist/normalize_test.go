// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"tailscale.com/types/ptr"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{
			name:    "empty name",
			schema:  Schema{Options: []Entry{{"", Option{}}}},
			wantErr: "empty option name",
		},
		{
			name:    "lone hyphen",
			schema:  Schema{Options: []Entry{{"-", Option{}}}},
			wantErr: "Invalid option name: -",
		},
		{
			name:    "leading hyphen",
			schema:  Schema{Options: []Entry{{"-def", Option{}}}},
			wantErr: "Invalid option name: -def",
		},
		{
			name:    "trailing hyphen",
			schema:  Schema{Options: []Entry{{"abc-", Option{}}}},
			wantErr: "Invalid option name: abc-",
		},
		{
			name:    "empty alias",
			schema:  Schema{Options: []Entry{{"abc", Option{Alias: []string{""}}}}},
			wantErr: "empty alias name",
		},
		{
			name:    "invalid alias",
			schema:  Schema{Options: []Entry{{"abc", Option{Alias: []string{"-x"}}}}},
			wantErr: "Invalid alias name: -x",
		},
		{
			name:    "false literal",
			schema:  Schema{Options: []Entry{{"abc", false}}},
			wantErr: "The --abc parameter cannot be declared with false.",
		},
		{
			name:    "nil literal",
			schema:  Schema{Options: []Entry{{"a", nil}}},
			wantErr: "The -a parameter has no definition.",
		},
		{
			name:    "nil option pointer",
			schema:  Schema{Options: []Entry{{"a", (*Option)(nil)}}},
			wantErr: "The -a parameter has no definition.",
		},
		{
			name:    "unsupported literal",
			schema:  Schema{Options: []Entry{{"a", []int{1}}}},
			wantErr: "unknown definition for the -a parameter: [1]",
		},
		{
			name:    "unknown type",
			schema:  Schema{Options: []Entry{{"a", Option{Type: Type(99)}}}},
			wantErr: "unknown type: Type(99) for the -a parameter",
		},
		{
			name:    "required boolean",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Required: true}}}},
			wantErr: "The -a cannot set to be required.",
		},
		{
			name:    "boolean default",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Default: true}}}},
			wantErr: "The default value of the -a parameter cannot be specified.: true",
		},
		{
			name:    "string default of wrong type",
			schema:  Schema{Options: []Entry{{"a", Option{Default: 1}}}},
			wantErr: "The default value of the -a parameter must be a string.: 1",
		},
		{
			name:    "number default of wrong type",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Default: "1"}}}},
			wantErr: "The default value of the -a parameter must be a number.: 1",
		},
		{
			name:    "alone and required",
			schema:  Schema{Options: []Entry{{"a", Option{Alone: true, Required: true}}}},
			wantErr: "The -a parameter can have only one of alone, required, default and multiple.",
		},
		{
			name:    "alone and default",
			schema:  Schema{Options: []Entry{{"a", Option{Alone: true, Default: "x"}}}},
			wantErr: "The -a parameter can have only one of alone, required, default and multiple.",
		},
		{
			name:    "required and default",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Required: true, Default: 1}}}},
			wantErr: "The -a parameter can have only one of alone, required, default and multiple.",
		},
		{
			name:    "multiple and default",
			schema:  Schema{Options: []Entry{{"a", Option{Multiple: true, Default: "x"}}}},
			wantErr: "The -a parameter can have only one of alone, required, default and multiple.",
		},
		{
			name:    "alone and multiple boolean",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Alone: true, Multiple: true}}}},
			wantErr: "The -a parameter can have only one of alone, required, default and multiple.",
		},
		{
			name:    "empty string enumeration",
			schema:  Schema{Options: []Entry{{"a", Option{Constraints: []string{}}}}},
			wantErr: "The constraints of the -a parameter must not be empty.",
		},
		{
			name:    "mixed string enumeration",
			schema:  Schema{Options: []Entry{{"a", Option{Constraints: []any{"x", 1}}}}},
			wantErr: "The constraints of the -a parameter must be an array of strings.: 1",
		},
		{
			name:    "numbers for a string option",
			schema:  Schema{Options: []Entry{{"a", Option{Constraints: []float64{1}}}}},
			wantErr: "The constraints of the -a parameter must be an array of strings or a regular expression.: [1]",
		},
		{
			name:    "nil pattern",
			schema:  Schema{Options: []Entry{{"a", Option{Constraints: (*regexp.Regexp)(nil)}}}},
			wantErr: "The constraints of the -a parameter must not be nil.",
		},
		{
			name:    "empty number enumeration",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: []float64{}}}}},
			wantErr: "The constraints of the -a parameter must not be empty.",
		},
		{
			name:    "strings for a number option",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: []string{"x"}}}}},
			wantErr: "The constraints of the -a parameter must be an array of numbers.: x",
		},
		{
			name:    "pattern for a number option",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: regexp.MustCompile(`x`)}}}},
			wantErr: "The constraints of the -a parameter must be an array of numbers or a range.: x",
		},
		{
			name:    "empty range",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: Range{}}}}},
			wantErr: "The constraints of the -a parameter must have at least one of min, minExclusive, max and maxExclusive.",
		},
		{
			name:    "min and minExclusive",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: Range{Min: ptr.To(1.0), MinExclusive: ptr.To(1.0)}}}}},
			wantErr: "The constraints of the -a parameter cannot have both min and minExclusive.",
		},
		{
			name:    "max and maxExclusive",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: &Range{Max: ptr.To(1.0), MaxExclusive: ptr.To(1.0)}}}}},
			wantErr: "The constraints of the -a parameter cannot have both max and maxExclusive.",
		},
		{
			name:    "range admitting nothing",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: Range{MinExclusive: ptr.To(1.0), Max: ptr.To(1.0)}}}}},
			wantErr: "The constraints of the -a parameter do not admit any value.",
		},
		{
			name:    "inverted range",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, AutoAdjust: true, Constraints: Range{Min: ptr.To(5.0), MaxExclusive: ptr.To(2.0)}}}}},
			wantErr: "The constraints of the -a parameter do not admit any value.",
		},
		{
			name:    "exclusive bounds one ulp apart",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: Range{MinExclusive: ptr.To(1.0), MaxExclusive: ptr.To(math.Nextafter(1, 2))}}}}},
			wantErr: "The constraints of the -a parameter do not admit any value.",
		},
		{
			name:    "NaN bound",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeNumber, Constraints: Range{Max: ptr.To(math.NaN())}}}}},
			wantErr: "The constraints of the -a parameter must not be NaN.",
		},
		{
			name:    "constraints on a single boolean",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Constraints: Range{Max: ptr.To(1.0)}}}}},
			wantErr: "The -a parameter cannot have constraints unless it is multiple.",
		},
		{
			name:    "enumeration on a counted boolean",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Multiple: true, Constraints: []float64{1}}}}},
			wantErr: "The constraints of the -a parameter must be a max count.: [1]",
		},
		{
			name:    "min on a counted boolean",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Multiple: true, Constraints: Range{Min: ptr.To(1.0), Max: ptr.To(2.0)}}}}},
			wantErr: "The constraints of the -a parameter can have only max.",
		},
		{
			name:    "fractional max count",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Multiple: true, Constraints: Range{Max: ptr.To(1.5)}}}}},
			wantErr: "The max count of the -a parameter must be a non-negative integer.: 1.5",
		},
		{
			name:    "negative max count",
			schema:  Schema{Options: []Entry{{"a", Option{Type: TypeBoolean, Multiple: true, Constraints: Range{Max: ptr.To(-1.0)}}}}},
			wantErr: "The max count of the -a parameter must be a non-negative integer.: -1",
		},
		{
			name:    "flattened names collide",
			schema:  Schema{Options: []Entry{{"abcDef", ""}, {"abc-def", ""}}},
			wantErr: "Duplicate option name: abc-def, abcDef",
		},
		{
			name:    "flattened digits collide",
			schema:  Schema{Options: []Entry{{"abc012", ""}, {"abc-012", ""}}},
			wantErr: "Duplicate option name: abc-012, abc012",
		},
		{
			name: "alias claims an option flag",
			schema: Schema{Options: []Entry{
				{"abc-def", ""},
				{"abc", Option{Alias: []string{"abc-def"}}},
			}},
			wantErr: "Duplicate alias name: abc, abc-def",
		},
		{
			name: "option flag claimed by an alias",
			schema: Schema{Options: []Entry{
				{"abc", Option{Alias: []string{"abc-def"}}},
				{"abc-def", ""},
			}},
			wantErr: "Duplicate alias name: abc-def, abc",
		},
		{
			name: "shared alias",
			schema: Schema{Options: []Entry{
				{"abc", Option{Alias: []string{"x"}}},
				{"def", Option{Alias: []string{"x"}}},
			}},
			wantErr: "Duplicate alias name: def, abc",
		},
		{
			name:    "alias repeats own name",
			schema:  Schema{Options: []Entry{{"abc", Option{Alias: []string{"abc"}}}}},
			wantErr: "Duplicate alias name: abc, abc",
		},
		{
			name:    "negative unnamed min",
			schema:  Schema{Unnamed: &Unnamed{Min: ptr.To(-1)}},
			wantErr: "The min of the unnamed parameters must not be negative.: -1",
		},
		{
			name:    "unnamed min above max",
			schema:  Schema{Unnamed: &Unnamed{Min: ptr.To(3), Max: ptr.To(2)}},
			wantErr: "The min of the unnamed parameters must not be greater than the max.: 3, 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.schema)
			if err == nil {
				t.Fatalf("Compile() = %v, want error %q", p, tt.wantErr)
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Compile() error = %T (%v), want *SchemaError", err, err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Compile() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCompileAccepts(t *testing.T) {
	schemas := map[string]Schema{
		"empty":              {},
		"counted boolean":    {Options: []Entry{{"v", Option{Type: TypeBoolean, Multiple: true, Constraints: Range{Max: ptr.To(3.0)}}}}},
		"zero max count":     {Options: []Entry{{"v", Option{Type: TypeBoolean, Multiple: true, Constraints: &Range{Max: ptr.To(0.0)}}}}},
		"any enumeration":    {Options: []Entry{{"s", Option{Constraints: []any{"a", "b"}}}}},
		"int enumeration":    {Options: []Entry{{"n", Option{Type: TypeNumber, Constraints: []int{1, 2}}}}},
		"single value range": {Options: []Entry{{"n", Option{Type: TypeNumber, Constraints: Range{Min: ptr.To(1.0), Max: ptr.To(1.0)}}}}},
		"pointer option":     {Options: []Entry{{"p", &Option{Required: true}}}},
		"unicode name":       {Options: []Entry{{"ä", true}, {"größe", 1}}},
		"unnamed equal":      {Unnamed: &Unnamed{Min: ptr.To(2), Max: ptr.To(2)}},
	}
	for name, s := range schemas {
		t.Run(name, func(t *testing.T) {
			if _, err := Compile(s); err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
		})
	}
}

func TestCompileCopiesSchema(t *testing.T) {
	lo := 1
	r := Range{Max: ptr.To(5.0)}
	aliases := []string{"x"}
	s := Schema{
		Unnamed: &Unnamed{Min: &lo},
		Options: []Entry{{"aa", Option{Type: TypeNumber, Alias: aliases, Constraints: r}}},
	}
	p, err := Compile(s)
	if err != nil {
		t.Fatal(err)
	}
	lo = 5
	*r.Max = 1
	aliases[0] = "y"

	if _, err := p.Parse([]string{"-x", "4", "pos"}); err != nil {
		t.Fatalf("Parse() after mutating the schema: %v", err)
	}
}

func TestFlagFor(t *testing.T) {
	tests := map[string]string{
		"a":     "-a",
		"?":     "-?",
		"ä":     "-ä",
		"ab":    "--ab",
		"dry-r": "--dry-r",
	}
	for in, want := range tests {
		if got := flagFor(in); got != want {
			t.Errorf("flagFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"abc":         "abc",
		"abc-def":     "abcDef",
		"abc-def-ghi": "abcDefGhi",
		"abc-012":     "abc012",
		"abcDef":      "abcDef",
		"a-b":         "aB",
		"größe-wert":  "größeWert",
	}
	for in, want := range tests {
		if got := camelCase(in); got != want {
			t.Errorf("camelCase(%q) = %q, want %q", in, got, want)
		}
	}
}
