// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkgmeta finds the name and version of the program for the help
// banner. It reads a package manifest next to (or above) a directory, or
// falls back to the Go build info of the running binary.
package pkgmeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/optionalist/pkg/optionalist"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/lazy"
)

// ManifestNames are the manifest files looked for in each directory, in
// order of preference.
var ManifestNames = []string{"package.toml", "package.yaml", "package.yml", "package.json"}

// ErrNotFound is returned by Find when no directory up to the root holds a
// manifest.
var ErrNotFound = errors.New("no package manifest found")

type manifest struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version" yaml:"version" toml:"version"`
}

// Read decodes the manifest at p. The version, when present, must be a
// semantic version and is returned in canonical form.
func Read(p string) (optionalist.Meta, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return optionalist.Meta{}, err
	}
	var m manifest
	switch filepath.Ext(p) {
	case ".toml":
		_, err = toml.Decode(string(b), &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &m)
	case ".json":
		err = json.Unmarshal(b, &m)
	default:
		err = fmt.Errorf("unsupported manifest type %q", filepath.Ext(p))
	}
	if err != nil {
		return optionalist.Meta{}, fmt.Errorf("failed to parse %s: %w", p, err)
	}
	meta := optionalist.Meta{Name: m.Name}
	if m.Version != "" {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return optionalist.Meta{}, fmt.Errorf("invalid version in %s: %w", p, err)
		}
		meta.Version = v.String()
	}
	return meta, nil
}

// Find walks from dir up to the filesystem root and returns the first
// manifest it finds together with its path.
func Find(dir string) (optionalist.Meta, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return optionalist.Meta{}, "", err
	}
	for {
		for _, name := range ManifestNames {
			p := filepath.Join(dir, name)
			if fi, err := os.Stat(p); err != nil || fi.IsDir() {
				continue
			}
			meta, err := Read(p)
			return meta, p, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return optionalist.Meta{}, "", ErrNotFound
		}
		dir = parent
	}
}

var readBuildInfo = debug.ReadBuildInfo

// FromBuildInfo derives the metadata from the main module of the running
// binary. Development builds have no version.
func FromBuildInfo() (optionalist.Meta, bool) {
	bi, ok := readBuildInfo()
	if !ok || bi.Main.Path == "" {
		return optionalist.Meta{}, false
	}
	meta := optionalist.Meta{Name: path.Base(bi.Main.Path)}
	if v, err := semver.NewVersion(bi.Main.Version); err == nil {
		meta.Version = v.String()
	}
	return meta, true
}

type lookup struct {
	meta optionalist.Meta
	ok   bool
}

// Source is an optionalist.MetaSource. The lookup happens on first use and
// its outcome is cached.
type Source struct {
	dir string
	v   lazy.SyncValue[lookup]
}

// Dir returns a Source that searches for a manifest from dir upwards.
func Dir(dir string) *Source {
	return &Source{dir: dir}
}

// Binary returns a Source backed by the Go build info.
func Binary() *Source {
	return &Source{}
}

// LookupMeta implements optionalist.MetaSource. A manifest that cannot be
// read is treated like a missing one.
func (s *Source) LookupMeta() (optionalist.Meta, bool) {
	r := s.v.Get(func() lookup {
		if s.dir == "" {
			meta, ok := FromBuildInfo()
			return lookup{meta, ok}
		}
		meta, _, err := Find(s.dir)
		return lookup{meta, err == nil}
	})
	return r.meta, r.ok
}
