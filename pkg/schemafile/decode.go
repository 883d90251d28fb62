// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// decodeYAML walks the node tree so the options mapping keeps its order.
func decodeYAML(b []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	d := &document{}
	if root.Kind == 0 {
		return d, nil
	}
	n := &root
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return d, nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: schema must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if _, dup := d.root[k.Value]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		if k.Value == "options" {
			opts, err := yamlOptions(v)
			if err != nil {
				return nil, err
			}
			d.options = opts
			mak.Set(&d.root, k.Value, any(nil))
			continue
		}
		var val any
		if err := v.Decode(&val); err != nil {
			return nil, fmt.Errorf("line %d: %w", v.Line, err)
		}
		mak.Set(&d.root, k.Value, val)
	}
	return d, nil
}

func yamlOptions(n *yaml.Node) ([]field, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: options must be a mapping", n.Line)
	}
	out := make([]field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		var val any
		if err := v.Decode(&val); err != nil {
			return nil, fmt.Errorf("line %d: %w", v.Line, err)
		}
		out = append(out, field{name: k.Value, value: val})
	}
	return out, nil
}

// decodeTOML uses the key order recorded in the metadata; the decoded map
// itself is unordered.
func decodeTOML(b []byte) (*document, error) {
	var root map[string]any
	md, err := toml.Decode(string(b), &root)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, errors.New(perr.ErrorWithPosition())
		}
		return nil, err
	}
	d := &document{root: root}
	raw, ok := root["options"]
	if !ok {
		return d, nil
	}
	opts, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("options must be a table, got %T", raw)
	}
	// Dotted keys such as zeta.type only show up with their full path, so an
	// option is placed where any of its keys first appears.
	seen := make(set.Set[string])
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "options" || seen.Contains(key[1]) {
			continue
		}
		seen.Add(key[1])
		d.options = append(d.options, field{name: key[1], value: opts[key[1]]})
	}
	return d, nil
}

// decodeJSON reads the document token by token so the options object keeps
// its order.
func decodeJSON(b []byte) (*document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	d := &document{}
	tok, err := dec.Token()
	if err == io.EOF {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, errors.New("schema must be an object")
	}
	for dec.More() {
		key, err := jsonKey(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := d.root[key]; dup {
			return nil, fmt.Errorf("offset %d: duplicate key %q", dec.InputOffset(), key)
		}
		if key == "options" {
			if d.options, err = jsonOptions(dec); err != nil {
				return nil, err
			}
			mak.Set(&d.root, key, any(nil))
			continue
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		mak.Set(&d.root, key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("offset %d: unexpected %v after the schema", dec.InputOffset(), tok)
		}
		return nil, err
	}
	return d, nil
}

func jsonOptions(dec *json.Decoder) ([]field, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("offset %d: options must be an object", dec.InputOffset())
	}
	var out []field
	for dec.More() {
		name, err := jsonKey(dec)
		if err != nil {
			return nil, err
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		out = append(out, field{name: name, value: val})
	}
	_, err = dec.Token()
	return out, err
}

func jsonKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	k, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("offset %d: expected an object key, got %v", dec.InputOffset(), tok)
	}
	return k, nil
}
