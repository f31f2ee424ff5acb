// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package codeunit

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// FsFactory is a function that returns the filesystem code units are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Unit is a loaded code unit.
type Unit struct {
	// Name is the manifest file name without its pattern suffix, e.g. "dds" for "dds.plugin.hcl".
	Name string
	// Path is the path of the manifest file.
	Path string
	// Symbols holds the top level values declared by the manifest.
	Symbols map[string]cty.Value
}

// Lookup returns the named symbol. A symbol declared as null is present and returned as a null value.
func (u *Unit) Lookup(name string) (cty.Value, bool) {
	v, ok := u.Symbols[name]
	if !ok {
		return cty.NilVal, false
	}

	return v, true
}

// SymbolNames returns the declared symbol names in sorted order.
func (u *Unit) SymbolNames() []string {
	names := make([]string, 0, len(u.Symbols))
	for k := range u.Symbols {
		names = append(names, k)
	}

	slices.Sort(names)

	return names
}

// Dir returns the directory containing the manifest.
func (u *Unit) Dir() string {
	return filepath.Dir(u.Path)
}

// Loader turns a manifest file into a Unit.
type Loader interface {
	// Pattern is the filepath.Match pattern of file names this loader accepts.
	Pattern() string
	// Load reads and evaluates the manifest at path.
	// Any failure is returned as a *LoadError.
	Load(ctx context.Context, fs afero.Fs, path string) (*Unit, error)
}

// Loaders is an ordered list of loaders. The first loader whose pattern matches a file wins.
type Loaders []Loader

// DefaultLoaders returns the HCL loader followed by the YAML loader.
func DefaultLoaders() Loaders {
	return Loaders{&HCLLoader{}, &YAMLLoader{}}
}

// Match returns the loader for the file name, or nil if no loader accepts it.
func (ls Loaders) Match(name string) Loader {
	for _, l := range ls {
		if ok, _ := filepath.Match(l.Pattern(), name); ok {
			return l
		}
	}

	return nil
}

// Patterns returns the patterns of all loaders, in order.
func (ls Loaders) Patterns() []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Pattern())
	}

	return out
}

// LoadError is returned when a manifest cannot be read, parsed or evaluated.
type LoadError struct {
	Path string
	Err  error
}

// NewLoadError creates a new LoadError.
func NewLoadError(path string, err error) *LoadError {
	return &LoadError{Path: path, Err: err}
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load code unit %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
