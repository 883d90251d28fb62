// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, p := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", p.key, err)
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (o object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range o {
		var k, v yaml.Node
		k.SetString(p.key)
		if err := v.Encode(p.value); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", p.key, err)
		}
		n.Content = append(n.Content, &k, &v)
	}
	return n, nil
}

func writeJSON(w io.Writer, o object) error {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

func writeYAML(w io.Writer, o object) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return err
	}
	return enc.Close()
}

// writeTOML emits the members of o one by one so the order survives; the
// encoder would sort a map. Nested objects become tables.
func writeTOML(w io.Writer, o object) error {
	return writeTOMLTable(w, "", sortedScalarsFirst(o))
}

func writeTOMLTable(w io.Writer, name string, o object) error {
	if name != "" {
		if _, err := fmt.Fprintf(w, "\n[%s]\n", tomlKey(name)); err != nil {
			return err
		}
	}
	enc := toml.NewEncoder(w)
	for _, p := range o {
		if sub, ok := p.value.(object); ok {
			if name != "" {
				return fmt.Errorf("nested table %s.%s is not supported", name, p.key)
			}
			if err := writeTOMLTable(w, p.key, sortedScalarsFirst(sub)); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(map[string]any{p.key: p.value}); err != nil {
			return fmt.Errorf("failed to encode %s: %w", p.key, err)
		}
	}
	return nil
}

// tomlKey quotes k unless it is a bare key.
func tomlKey(k string) string {
	for _, r := range k {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return fmt.Sprintf("%q", k)
		}
	}
	if k == "" {
		return `""`
	}
	return k
}
