// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"slices"

	"tailscale.com/types/lazy"
)

// Result is the outcome of a successful parse. It is either a *Normal or
// an *Alone; callers type-switch on it:
//
//	switch r := res.(type) {
//	case *optionalist.Alone:
//	    // only r.Name() was given
//	case *optionalist.Normal:
//	    // r.Get(...), r.Unnamed()
//	}
//
// Results are immutable.
type Result interface {
	// Help returns the usage text of the parser that produced the result.
	// It is rendered on first use and cached.
	Help() string

	isResult()
}

// helpText memoizes the help string of one result.
type helpText struct {
	p *Parser
	v lazy.SyncValue[string]
}

func (h *helpText) get() string {
	return h.v.Get(h.p.Help)
}

// Normal is the result when no alone option was given: every option
// that was supplied, defaulted or is multiple, plus the positional list.
type Normal struct {
	values  map[string]Value
	order   []string
	unnamed []string
	help    helpText
}

func (*Normal) isResult() {}

func (r *Normal) Help() string { return r.help.get() }

// Get returns the value of an option by its declared or flattened name
// ("dry-run" and "dryRun" are the same key).
func (r *Normal) Get(name string) (Value, bool) {
	v, ok := r.values[camelCase(name)]
	return v, ok
}

// Has reports whether the option has a value.
func (r *Normal) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the flattened keys that have values, in schema order.
func (r *Normal) Names() []string { return slices.Clone(r.order) }

// Unnamed returns the positional arguments in order.
func (r *Normal) Unnamed() []string { return slices.Clone(r.unnamed) }

// Alone is the result when an alone option was given. No other option and
// no positional argument can be present.
type Alone struct {
	name  string
	key   string
	flag  string
	value Value
	help  helpText
}

func (*Alone) isResult() {}

func (r *Alone) Help() string { return r.help.get() }

// Name returns the declared name of the option, e.g. "dry-run".
func (r *Alone) Name() string { return r.name }

// Key returns the flattened name of the option, e.g. "dryRun".
func (r *Alone) Key() string { return r.key }

// Flag returns the token that selected the option, which may be an alias.
func (r *Alone) Flag() string { return r.flag }

// Value returns the option's value.
func (r *Alone) Value() Value { return r.value }
