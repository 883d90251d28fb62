// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which field of a Value is populated.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool    // a plain boolean flag, always true when present
	KindCount   // a multiple boolean flag
	KindStrings // a multiple string option
	KindNumbers // a multiple number option
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindCount:
		return "count"
	case KindStrings:
		return "strings"
	case KindNumbers:
		return "numbers"
	}
	return "invalid"
}

// Value is a resolved option value. The zero Value is invalid.
// Values are immutable; slice accessors return copies.
type Value struct {
	kind  Kind
	str   string
	num   float64
	count int
	strs  []string
	nums  []float64
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }
func BoolValue() Value { return Value{kind: KindBool} }
func CountValue(n int) Value { return Value{kind: KindCount, count: n} }
func StringsValue(s ...string) Value {
	return Value{kind: KindStrings, strs: append([]string{}, s...)}
}

func NumbersValue(n ...float64) Value {
	return Value{kind: KindNumbers, nums: append([]float64{}, n...)}
}

func (v Value) Kind() Kind { return v.kind }

// String returns the value of a string option, or a display form of any
// other kind.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return "true"
	case KindCount:
		return strconv.Itoa(v.count)
	case KindStrings:
		return fmt.Sprint(v.strs)
	case KindNumbers:
		out := make([]string, len(v.nums))
		for i, n := range v.nums {
			out[i] = formatNumber(n)
		}
		return fmt.Sprint(out)
	}
	return "<invalid>"
}

// Number returns the value of a number option.
func (v Value) Number() float64 { return v.num }

// Bool reports whether a boolean flag was given. For counted flags it
// reports a non-zero count.
func (v Value) Bool() bool {
	return v.kind == KindBool || (v.kind == KindCount && v.count > 0)
}

// Count returns the number of occurrences of a multiple boolean flag.
func (v Value) Count() int { return v.count }

// Strings returns the values of a multiple string option.
func (v Value) Strings() []string { return slices.Clone(v.strs) }

// Numbers returns the values of a multiple number option.
func (v Value) Numbers() []float64 { return slices.Clone(v.nums) }

// Len returns the number of elements of a multiple option.
func (v Value) Len() int {
	switch v.kind {
	case KindStrings:
		return len(v.strs)
	case KindNumbers:
		return len(v.nums)
	case KindCount:
		return v.count
	}
	return 0
}

// Interface returns the value as a plain Go value suitable for encoders:
// string, float64, bool, int, []string or []float64.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return true
	case KindCount:
		return v.count
	case KindStrings:
		return v.Strings()
	case KindNumbers:
		return v.Numbers()
	}
	return nil
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind &&
		v.str == o.str &&
		v.num == o.num &&
		v.count == o.count &&
		slices.Equal(v.strs, o.strs) &&
		slices.Equal(v.nums, o.nums)
}

func (v Value) withString(s string) Value {
	v.strs = append(slices.Clone(v.strs), s)
	return v
}

func (v Value) withNumber(n float64) Value {
	v.nums = append(slices.Clone(v.nums), n)
	return v
}

// formatNumber renders n the way it is echoed back in messages: integers
// without a fraction, everything else in the shortest exact form.
func formatNumber(n float64) string {
	abs := math.Abs(n)
	if n == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
