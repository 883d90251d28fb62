// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// parseNumber accepts decimal literals with an optional sign and exponent,
// and unsigned 0x, 0o and 0b integers, surrounded by optional spaces. The
// result must be finite. Digit separators and hex floats are rejected.
func parseNumber(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" || strings.Contains(t, "_") {
		return 0, false
	}
	if len(t) > 2 && t[0] == '0' && strings.ContainsRune("xXoObB", rune(t[1])) {
		i, ok := new(big.Int).SetString(t, 0)
		if !ok {
			return 0, false
		}
		n, _ := new(big.Float).SetInt(i).Float64()
		return n, !math.IsInf(n, 0)
	}
	if strings.ContainsAny(t, "xX") {
		return 0, false
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// checkString applies the enumeration or pattern constraint of d to s.
// With ignoreCase the enumerated spelling is returned.
func (d *descriptor) checkString(flag, s string) (string, error) {
	if d.strEnum != nil {
		if slices.Contains(d.strEnum, s) {
			return s, nil
		}
		if d.ignoreCase {
			for _, allowed := range d.strEnum {
				if strings.EqualFold(allowed, s) {
					return allowed, nil
				}
			}
		}
		return "", usageErrorf(flag, "%s must be one of %s.: %s", flag, strings.Join(d.strEnum, ", "), s)
	}
	if d.pattern != nil && !d.pattern.MatchString(s) {
		return "", usageErrorf(flag, "%s does not match /%s/.: %s", flag, d.pattern.String(), s)
	}
	return s, nil
}

// checkNumber applies the enumeration or range constraint of d to n. With
// autoAdjust an out-of-range n is moved to the nearest legal value instead
// of failing.
func (d *descriptor) checkNumber(flag string, n float64) (float64, error) {
	if d.numEnum != nil {
		if slices.Contains(d.numEnum, n) {
			return n, nil
		}
		if d.autoAdjust {
			return nearest(d.numEnum, n), nil
		}
		list := make([]string, len(d.numEnum))
		for i, v := range d.numEnum {
			list[i] = formatNumber(v)
		}
		return 0, usageErrorf(flag, "%s must be one of %s.: %s", flag, strings.Join(list, ", "), formatNumber(n))
	}
	r := d.rng
	if r == nil {
		return n, nil
	}
	if r.Min != nil && n < *r.Min {
		if !d.autoAdjust {
			return 0, usageErrorf(flag, "%s must be greater than or equal to %s.: %s", flag, formatNumber(*r.Min), formatNumber(n))
		}
		n = *r.Min
	}
	if r.MinExclusive != nil && n <= *r.MinExclusive {
		if !d.autoAdjust {
			return 0, usageErrorf(flag, "%s must be greater than %s.: %s", flag, formatNumber(*r.MinExclusive), formatNumber(n))
		}
		n = math.Nextafter(*r.MinExclusive, math.Inf(1))
	}
	if r.Max != nil && n > *r.Max {
		if !d.autoAdjust {
			return 0, usageErrorf(flag, "%s must be less than or equal to %s.: %s", flag, formatNumber(*r.Max), formatNumber(n))
		}
		n = *r.Max
	}
	if r.MaxExclusive != nil && n >= *r.MaxExclusive {
		if !d.autoAdjust {
			return 0, usageErrorf(flag, "%s must be less than %s.: %s", flag, formatNumber(*r.MaxExclusive), formatNumber(n))
		}
		n = math.Nextafter(*r.MaxExclusive, math.Inf(-1))
	}
	return n, nil
}

// nearest returns the element of list closest to n. Ties keep the earlier
// element.
func nearest(list []float64, n float64) float64 {
	best := list[0]
	bestDist := math.Abs(best - n)
	for _, v := range list[1:] {
		if dist := math.Abs(v - n); dist < bestDist {
			best, bestDist = v, dist
		}
	}
	return best
}

// coerce turns the raw token following flag into a checked value of d's
// type.
func (d *descriptor) coerce(flag, raw string) (Value, error) {
	if d.typ == TypeNumber {
		n, ok := parseNumber(raw)
		if !ok {
			return Value{}, usageErrorf(flag, "%s needs a number parameter%s: %s", flag, d.asTheExample(), raw)
		}
		n, err := d.checkNumber(flag, n)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	}
	s, err := d.checkString(flag, raw)
	if err != nil {
		return Value{}, err
	}
	return StringValue(s), nil
}

func (d *descriptor) asTheExample() string {
	if d.example == "" {
		return ""
	}
	return " as the " + d.example
}
