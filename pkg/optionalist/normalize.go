// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optionalist

import (
	"math"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

// mode is the cardinality of an option. The schema fields Alone, Required,
// Default and Multiple collapse into exactly one mode.
type mode int

const (
	modeNone mode = iota
	modeAlone
	modeRequired
	modeDefault
	modeMultiple
)

// descriptor is the normalized form of one schema entry.
type descriptor struct {
	name    string // as declared, e.g. "dry-run"
	key     string // flattened result key, e.g. "dryRun"
	flag    string // e.g. "--dry-run"
	typ     Type
	mode    mode
	def     Value
	aliases []string

	strEnum    []string
	numEnum    []float64
	pattern    *regexp.Regexp
	rng        *Range
	maxCount   int
	hasMax     bool
	ignoreCase bool
	autoAdjust bool

	describe string
	example  string
}

// flags returns the option's own flag token followed by its aliases.
func (d *descriptor) flags() []string {
	out := make([]string, 0, 1+len(d.aliases))
	out = append(out, d.flag)
	for _, a := range d.aliases {
		out = append(out, flagFor(a))
	}
	return out
}

// normalize validates every entry of s and returns one descriptor per
// option in declaration order.
func normalize(s Schema) ([]*descriptor, error) {
	if err := checkUnnamed(s.Unnamed); err != nil {
		return nil, err
	}
	descs := make([]*descriptor, 0, len(s.Options))
	for _, e := range s.Options {
		d, err := normalizeEntry(e)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return descs, nil
}

func checkUnnamed(u *Unnamed) error {
	if u == nil {
		return nil
	}
	if u.Min != nil && *u.Min < 0 {
		return schemaErrorf("", "The min of the unnamed parameters must not be negative.: %d", *u.Min)
	}
	if u.Max != nil && *u.Max < 0 {
		return schemaErrorf("", "The max of the unnamed parameters must not be negative.: %d", *u.Max)
	}
	if u.Min != nil && u.Max != nil && *u.Min > *u.Max {
		return schemaErrorf("", "The min of the unnamed parameters must not be greater than the max.: %d, %d", *u.Min, *u.Max)
	}
	return nil
}

func checkName(name, kind string) error {
	if name == "" {
		return schemaErrorf(name, "empty %s name", kind)
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return schemaErrorf(name, "Invalid %s name: %s", kind, name)
	}
	return nil
}

// expandShorthand turns a literal schema value into its Option form.
func expandShorthand(name string, v any) (Option, error) {
	flag := flagFor(name)
	switch x := v.(type) {
	case Option:
		return x, nil
	case *Option:
		if x == nil {
			return Option{}, schemaErrorf(name, "The %s parameter has no definition.", flag)
		}
		return *x, nil
	case string:
		return Option{Type: TypeString, Default: x}, nil
	case bool:
		if !x {
			return Option{}, schemaErrorf(name, "The %s parameter cannot be declared with false.", flag)
		}
		return Option{Type: TypeBoolean}, nil
	case nil:
		return Option{}, schemaErrorf(name, "The %s parameter has no definition.", flag)
	}
	if n, ok := toNumber(v); ok {
		return Option{Type: TypeNumber, Default: n}, nil
	}
	return Option{}, schemaErrorf(name, "unknown definition for the %s parameter: %v", flag, v)
}

func normalizeEntry(e Entry) (*descriptor, error) {
	if err := checkName(e.Name, "option"); err != nil {
		return nil, err
	}
	o, err := expandShorthand(e.Name, e.Value)
	if err != nil {
		return nil, err
	}
	flag := flagFor(e.Name)
	d := &descriptor{
		name:       e.Name,
		key:        camelCase(e.Name),
		flag:       flag,
		typ:        o.Type,
		aliases:    slices.Clone(o.Alias),
		ignoreCase: o.IgnoreCase,
		autoAdjust: o.AutoAdjust,
		describe:   o.Describe,
		example:    o.Example,
	}
	switch o.Type {
	case TypeString, TypeNumber, TypeBoolean:
	default:
		return nil, schemaErrorf(e.Name, "unknown type: %v for the %s parameter", o.Type, flag)
	}
	for _, a := range d.aliases {
		if err := checkName(a, "alias"); err != nil {
			return nil, err
		}
	}
	if o.Type == TypeBoolean && o.Required {
		return nil, schemaErrorf(e.Name, "The %s cannot set to be required.", flag)
	}
	if err := d.setMode(o); err != nil {
		return nil, err
	}
	if err := d.setConstraints(o); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *descriptor) setMode(o Option) error {
	n := 0
	for _, b := range []bool{o.Alone, o.Required, o.Multiple, o.Default != nil} {
		if b {
			n++
		}
	}
	if o.Default != nil {
		switch o.Type {
		case TypeBoolean:
			return schemaErrorf(d.name, "The default value of the %s parameter cannot be specified.: %v", d.flag, o.Default)
		case TypeNumber:
			v, ok := toNumber(o.Default)
			if !ok {
				return schemaErrorf(d.name, "The default value of the %s parameter must be a number.: %v", d.flag, o.Default)
			}
			d.def = NumberValue(v)
		case TypeString:
			s, ok := o.Default.(string)
			if !ok {
				return schemaErrorf(d.name, "The default value of the %s parameter must be a string.: %v", d.flag, o.Default)
			}
			d.def = StringValue(s)
		}
	}
	if n > 1 {
		return schemaErrorf(d.name, "The %s parameter can have only one of alone, required, default and multiple.", d.flag)
	}
	switch {
	case o.Alone:
		d.mode = modeAlone
	case o.Required:
		d.mode = modeRequired
	case o.Multiple:
		d.mode = modeMultiple
	case o.Default != nil:
		d.mode = modeDefault
	}
	return nil
}

func (d *descriptor) setConstraints(o Option) error {
	c := o.Constraints
	if c == nil {
		return nil
	}
	switch d.typ {
	case TypeString:
		return d.setStringConstraints(c)
	case TypeNumber:
		return d.setNumberConstraints(c)
	}
	return d.setBooleanConstraints(c)
}

func (d *descriptor) setStringConstraints(c any) error {
	switch x := c.(type) {
	case *regexp.Regexp:
		if x == nil {
			return schemaErrorf(d.name, "The constraints of the %s parameter must not be nil.", d.flag)
		}
		d.pattern = x
		return nil
	case []string:
		if len(x) == 0 {
			return schemaErrorf(d.name, "The constraints of the %s parameter must not be empty.", d.flag)
		}
		d.strEnum = slices.Clone(x)
		return nil
	case []any:
		if len(x) == 0 {
			return schemaErrorf(d.name, "The constraints of the %s parameter must not be empty.", d.flag)
		}
		for _, v := range x {
			s, ok := v.(string)
			if !ok {
				return schemaErrorf(d.name, "The constraints of the %s parameter must be an array of strings.: %v", d.flag, v)
			}
			d.strEnum = append(d.strEnum, s)
		}
		return nil
	}
	return schemaErrorf(d.name, "The constraints of the %s parameter must be an array of strings or a regular expression.: %v", d.flag, c)
}

func (d *descriptor) setNumberConstraints(c any) error {
	switch x := c.(type) {
	case Range:
		return d.setRange(x)
	case *Range:
		if x == nil {
			return schemaErrorf(d.name, "The constraints of the %s parameter must not be nil.", d.flag)
		}
		return d.setRange(*x)
	}
	rv := reflect.ValueOf(c)
	if rv.Kind() != reflect.Slice {
		return schemaErrorf(d.name, "The constraints of the %s parameter must be an array of numbers or a range.: %v", d.flag, c)
	}
	if rv.Len() == 0 {
		return schemaErrorf(d.name, "The constraints of the %s parameter must not be empty.", d.flag)
	}
	for i := 0; i < rv.Len(); i++ {
		n, ok := toNumber(rv.Index(i).Interface())
		if !ok {
			return schemaErrorf(d.name, "The constraints of the %s parameter must be an array of numbers.: %v", d.flag, rv.Index(i).Interface())
		}
		d.numEnum = append(d.numEnum, n)
	}
	return nil
}

func (d *descriptor) setRange(r Range) error {
	if r.Min == nil && r.MinExclusive == nil && r.Max == nil && r.MaxExclusive == nil {
		return schemaErrorf(d.name, "The constraints of the %s parameter must have at least one of min, minExclusive, max and maxExclusive.", d.flag)
	}
	if r.Min != nil && r.MinExclusive != nil {
		return schemaErrorf(d.name, "The constraints of the %s parameter cannot have both min and minExclusive.", d.flag)
	}
	if r.Max != nil && r.MaxExclusive != nil {
		return schemaErrorf(d.name, "The constraints of the %s parameter cannot have both max and maxExclusive.", d.flag)
	}
	for _, p := range []*float64{r.Min, r.MinExclusive, r.Max, r.MaxExclusive} {
		if p != nil && math.IsNaN(*p) {
			return schemaErrorf(d.name, "The constraints of the %s parameter must not be NaN.", d.flag)
		}
	}
	if lo, hi := rangeBounds(r); lo > hi {
		return schemaErrorf(d.name, "The constraints of the %s parameter do not admit any value.", d.flag)
	}
	d.rng = &Range{
		Min:          clonePtr(r.Min),
		MinExclusive: clonePtr(r.MinExclusive),
		Max:          clonePtr(r.Max),
		MaxExclusive: clonePtr(r.MaxExclusive),
	}
	return nil
}

// rangeBounds returns the smallest and largest values r admits.
func rangeBounds(r Range) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	switch {
	case r.Min != nil:
		lo = *r.Min
	case r.MinExclusive != nil:
		lo = math.Nextafter(*r.MinExclusive, math.Inf(1))
	}
	switch {
	case r.Max != nil:
		hi = *r.Max
	case r.MaxExclusive != nil:
		hi = math.Nextafter(*r.MaxExclusive, math.Inf(-1))
	}
	return lo, hi
}

func (d *descriptor) setBooleanConstraints(c any) error {
	if d.mode != modeMultiple {
		return schemaErrorf(d.name, "The %s parameter cannot have constraints unless it is multiple.", d.flag)
	}
	var r Range
	switch x := c.(type) {
	case Range:
		r = x
	case *Range:
		if x != nil {
			r = *x
		}
	default:
		return schemaErrorf(d.name, "The constraints of the %s parameter must be a max count.: %v", d.flag, c)
	}
	if r.Max == nil || r.Min != nil || r.MinExclusive != nil || r.MaxExclusive != nil {
		return schemaErrorf(d.name, "The constraints of the %s parameter can have only max.", d.flag)
	}
	if limit := *r.Max; limit < 0 || limit != math.Trunc(limit) || limit > math.MaxInt32 {
		return schemaErrorf(d.name, "The max count of the %s parameter must be a non-negative integer.: %v", d.flag, limit)
	}
	d.maxCount = int(*r.Max)
	d.hasMax = true
	return nil
}

// toNumber accepts any Go integer or float kind.
func toNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
