// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import "strings"

// endOfOptions stops flag recognition; every later token is positional.
const endOfOptions = "--"

// scanState is the accumulator of a single left-to-right pass.
type scanState struct {
	values  map[string]Value // keyed by descriptor.key
	unnamed []string

	alone     *descriptor // the alone option that fired, if any
	aloneFlag string      // the token that selected it
	prevFlag  string      // the last recognized flag token
}

// scan walks args once. A flag that takes a value consumes the next token
// verbatim, whatever it looks like.
func (p *Parser) scan(args []string) (*scanState, error) {
	st := &scanState{
		values:  make(map[string]Value),
		unnamed: []string{},
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == endOfOptions {
			if st.aloneFlag != "" {
				return nil, usageErrorf(st.aloneFlag, "%s must be specified alone.", st.aloneFlag)
			}
			st.unnamed = append(st.unnamed, args[i+1:]...)
			break
		}

		d, ok := p.table[arg]
		if !ok {
			if strings.HasPrefix(arg, "-") {
				return nil, usageErrorf(arg, "unknown options: %s", arg)
			}
			st.unnamed = append(st.unnamed, arg)
			continue
		}

		if st.aloneFlag != "" || (st.prevFlag != "" && d.mode == modeAlone) {
			flag := st.aloneFlag
			if flag == "" {
				flag = arg
			}
			return nil, usageErrorf(flag, "%s must be specified alone.", flag)
		}
		st.prevFlag = arg
		if d.mode == modeAlone {
			st.alone = d
			st.aloneFlag = arg
		}

		if d.typ == TypeBoolean {
			if err := st.setFlag(d, arg); err != nil {
				return nil, err
			}
			continue
		}

		if i+1 >= len(args) {
			if d.typ == TypeNumber {
				return nil, usageErrorf(arg, "%s needs a number parameter%s", arg, d.asTheExample())
			}
			return nil, usageErrorf(arg, "%s needs a parameter%s", arg, d.asTheExample())
		}
		i++
		v, err := d.coerce(arg, args[i])
		if err != nil {
			return nil, err
		}
		if err := st.setValue(d, arg, v); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// setFlag records one occurrence of a boolean flag.
func (st *scanState) setFlag(d *descriptor, flag string) error {
	old, seen := st.values[d.key]
	if d.mode != modeMultiple {
		if seen {
			return usageErrorf(flag, "Duplicate %s", flag)
		}
		st.values[d.key] = BoolValue()
		return nil
	}
	n := old.Count() + 1
	if d.hasMax && n > d.maxCount {
		return usageErrorf(flag, "Exceeded max count(%d): %s", d.maxCount, flag)
	}
	st.values[d.key] = CountValue(n)
	return nil
}

// setValue stores v for a string or number option. Single-valued options
// reject a second occurrence; multiple ones append in encounter order.
func (st *scanState) setValue(d *descriptor, flag string, v Value) error {
	old, seen := st.values[d.key]
	if d.mode == modeMultiple {
		if !seen {
			old = d.empty()
		}
		if d.typ == TypeNumber {
			st.values[d.key] = old.withNumber(v.Number())
		} else {
			st.values[d.key] = old.withString(v.String())
		}
		return nil
	}
	if seen {
		return usageErrorf(flag, "Duplicate %s: %s, %s", flag, old.String(), v.String())
	}
	st.values[d.key] = v
	return nil
}

// empty is the value of a multiple option that never occurred.
func (d *descriptor) empty() Value {
	switch d.typ {
	case TypeBoolean:
		return CountValue(0)
	case TypeNumber:
		return NumbersValue()
	}
	return StringsValue()
}
