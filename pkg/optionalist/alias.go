// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tailscale.com/util/mak"
)

// flagFor returns the command-line token for an option or alias name:
// one hyphen for single-character names, two otherwise.
func flagFor(name string) string {
	if utf8.RuneCountInString(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// camelCase folds hyphen-delimited words into one identifier:
// "dry-run" becomes "dryRun" and "abc-012" becomes "abc012".
func camelCase(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// aliasTable maps every accepted flag token to the option it selects.
type aliasTable map[string]*descriptor

// buildAliasTable registers each option's own flag and its aliases.
// Two options may not flatten to the same result key, and no flag token
// may be claimed twice.
func buildAliasTable(descs []*descriptor) (aliasTable, error) {
	var (
		table aliasTable
		keys  map[string]string // flattened key -> declared name
	)
	for _, d := range descs {
		if prev, ok := keys[d.key]; ok {
			return nil, schemaErrorf(d.name, "Duplicate option name: %s, %s", d.name, prev)
		}
		mak.Set(&keys, d.key, d.name)
		for _, flag := range d.flags() {
			if owner, ok := table[flag]; ok {
				return nil, schemaErrorf(d.name, "Duplicate alias name: %s, %s", d.name, owner.name)
			}
			mak.Set(&table, flag, d)
		}
	}
	return table, nil
}
