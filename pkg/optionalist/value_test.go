// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"math"
	"strings"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
		kind Kind
		len  int
	}{
		{Value{}, "<invalid>", KindInvalid, 0},
		{StringValue("x y"), "x y", KindString, 0},
		{NumberValue(3), "3", KindNumber, 0},
		{NumberValue(-0.25), "-0.25", KindNumber, 0},
		{NumberValue(1e21), "1e+21", KindNumber, 0},
		{NumberValue(123456789), "123456789", KindNumber, 0},
		{NumberValue(1e-7), "1e-07", KindNumber, 0},
		{BoolValue(), "true", KindBool, 0},
		{CountValue(3), "3", KindCount, 3},
		{StringsValue("a", "b"), "[a b]", KindStrings, 2},
		{NumbersValue(1, 2.5), "[1 2.5]", KindNumbers, 2},
		{NumbersValue(), "[]", KindNumbers, 0},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.v.Kind(); got != tt.kind {
			t.Errorf("%q Kind() = %v, want %v", tt.want, got, tt.kind)
		}
		if got := tt.v.Len(); got != tt.len {
			t.Errorf("%q Len() = %d, want %d", tt.want, got, tt.len)
		}
	}
}

func TestValueBool(t *testing.T) {
	if !BoolValue().Bool() {
		t.Error("BoolValue().Bool() = false")
	}
	if CountValue(0).Bool() {
		t.Error("CountValue(0).Bool() = true")
	}
	if !CountValue(2).Bool() {
		t.Error("CountValue(2).Bool() = false")
	}
	if StringValue("true").Bool() {
		t.Error("StringValue(true).Bool() = true")
	}
}

func TestValueEqual(t *testing.T) {
	if !StringsValue("a").Equal(StringsValue().withString("a")) {
		t.Error("appended strings differ")
	}
	if !NumbersValue().Equal(NumbersValue()) {
		t.Error("empty numbers differ")
	}
	if StringValue("1").Equal(NumberValue(1)) {
		t.Error("string and number compare equal")
	}
	if NumbersValue(1).Equal(NumbersValue(1, 2)) {
		t.Error("different lengths compare equal")
	}
}

func TestValueAppendDoesNotAlias(t *testing.T) {
	base := StringsValue("a", "b")
	x := base.withString("x")
	y := base.withString("y")
	if got := x.Strings(); got[2] != "x" {
		t.Errorf("x = %q", got)
	}
	if got := y.Strings(); got[2] != "y" {
		t.Errorf("y = %q", got)
	}
	if base.Len() != 2 {
		t.Errorf("base.Len() = %d, want 2", base.Len())
	}
}

func TestParseNumber(t *testing.T) {
	ok := map[string]float64{
		"0":      0,
		"-1":     -1,
		"1.5":    1.5,
		" 7 ":    7,
		"1e3":    1000,
		"-0.125": -0.125,
		".5":     0.5,
		"0x10":   16,
		"0X1f":   31,
		"0b101":  5,
		"0o7":    7,
		"007":    7,
	}
	for in, want := range ok {
		got, valid := parseNumber(in)
		if !valid || got != want {
			t.Errorf("parseNumber(%q) = %v, %v; want %v", in, got, valid, want)
		}
	}
	for _, in := range []string{
		"", " ", "abc", "1,5", "NaN", "Inf", "-Inf", "1e400", "12abc",
		"1_000", "0x1_0", "0x1p4", "-0x1p4", "0x", "-0x10", "+0b1", "0b102", "0x" + strings.Repeat("f", 300),
	} {
		if got, valid := parseNumber(in); valid {
			t.Errorf("parseNumber(%q) = %v, want invalid", in, got)
		}
	}
	if got, _ := parseNumber("5e-324"); got != math.SmallestNonzeroFloat64 {
		t.Errorf("parseNumber(5e-324) = %v", got)
	}
}
