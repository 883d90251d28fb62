// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optionalist parses command-line arguments against a declarative
// schema and returns validated, typed values or a descriptive error.
//
// The package does no I/O. It never reads os.Args, writes to a terminal or
// exits; see package cmdline for the process wrapper.
//
// # Schema
//
// A Schema lists named options in order. Each entry is either a full
// Option or a shorthand literal:
//
//	s := optionalist.Schema{
//	    Describe: "Build the site.",
//	    Unnamed:  &optionalist.Unnamed{Example: "page", Min: ptr.To(1)},
//	}
//	s.Add("help", optionalist.Option{Type: optionalist.TypeBoolean, Alone: true, Alias: []string{"h"}})
//	s.Add("output", optionalist.Option{Required: true, Example: "dir"})
//	s.Add("jobs", 4)            // number, defaults to 4
//	s.Add("theme", "plain")     // string, defaults to "plain"
//	s.Add("dry-run", true)      // boolean flag
//
// Names of one character become "-x" flags, longer names "--name". Result
// keys fold hyphenated names into camel case ("dry-run" is "dryRun").
//
// An option is at most one of Alone, Required, Multiple or has a Default.
// An alone option must be the only option on the command line and forbids
// positional arguments; when it is given, defaults and required checks are
// skipped and the result is an *Alone.
//
// # Constraints
//
// String options accept an enumeration ([]string, optionally IgnoreCase)
// or a *regexp.Regexp. Number options accept an enumeration ([]float64)
// or a Range; with AutoAdjust out-of-range values are clamped instead of
// rejected. Multiple boolean flags count occurrences and accept
// Range{Max: ...} as a limit.
//
// # Flag syntax
//
//   - "-x" and "--name" select an option; a non-boolean option consumes
//     the next token verbatim as its value.
//   - "--" ends option parsing; all later tokens are positional.
//   - Any other token starting with "-" is an error.
//
// # Errors
//
// Compile returns *SchemaError for mistakes in the schema. Parse returns
// *UsageError for mistakes on the command line; only those are meant to be
// shown to the end user together with the help text.
package optionalist
