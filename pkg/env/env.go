// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes shell variable assignments.
package env

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Var is a single NAME=value assignment.
type Var struct {
	Name  string
	Value string
}

// Marshal writes one assignment per line. Values are single-quoted so the
// output can be sourced by a POSIX shell.
func Marshal(w io.Writer, vars []Var) error {
	for _, v := range vars {
		if !validName(v.Name) {
			return fmt.Errorf("invalid variable name %q", v.Name)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", v.Name, Quote(v.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Quote single-quotes s for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Name turns prefix and a camel-case key into an upper snake-case variable
// name: Name("OPT_", "dryRun") is "OPT_DRY_RUN". Characters a shell does
// not allow in names become underscores.
func Name(prefix, key string) string {
	var b strings.Builder
	b.WriteString(prefix)
	prevLower := false
	for _, r := range key {
		switch {
		case r >= 'A' && r <= 'Z':
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			prevLower = false
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(unicode.ToUpper(r))
			prevLower = true
		default:
			b.WriteByte('_')
			prevLower = false
		}
	}
	return b.String()
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
