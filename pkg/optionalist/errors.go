// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import "fmt"

// SchemaError reports a mistake in the schema itself. It is a programming
// error of the tool author and is never eligible for ShowUsageOnError.
type SchemaError struct {
	Option string // The option name involved (empty for schema-wide problems)
	Msg    string
}

func (e *SchemaError) Error() string {
	return e.Msg
}

// UsageError reports a mistake on the command line. Msg is a single line
// naming the offending flag or value.
type UsageError struct {
	Flag string // The flag token involved, if any (e.g. "--name" or "-n")
	Msg  string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func schemaErrorf(option, format string, args ...any) error {
	return &SchemaError{Option: option, Msg: fmt.Sprintf(format, args...)}
}

func usageErrorf(flag, format string, args ...any) error {
	return &UsageError{Flag: flag, Msg: fmt.Sprintf(format, args...)}
}
