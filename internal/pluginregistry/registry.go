// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pluginregistry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/matt-FFFFFF/yaam/internal/codeunit"
	"github.com/matt-FFFFFF/yaam/internal/contract"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/matt-FFFFFF/yaam/internal/handler"
	"github.com/matt-FFFFFF/yaam/internal/invoke"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

type phase int

const (
	phaseConfiguring phase = iota
	phaseRegistered
	phaseFailed
)

// InvokerFactory creates the entry point for a validated loader declaration.
// manifestDir is the directory containing the manifest.
type InvokerFactory func(manifestDir string, loader cty.Value) (handler.EntryPoint, error)

// Registry holds the search paths and, after registration, the registered handlers.
// It is not safe for concurrent use.
type Registry struct {
	searchPaths   []string
	descriptors   []*handler.Descriptor
	loaders       codeunit.Loaders
	newEntryPoint InvokerFactory
	phase         phase
	err           error
}

// Option configures a Registry.
type Option func(r *Registry)

// WithLoaders replaces the default manifest loaders. The first loader matching a file name wins.
func WithLoaders(loaders ...codeunit.Loader) Option {
	return func(r *Registry) {
		r.loaders = loaders
	}
}

// WithInvokerFactory replaces invoke.New as the entry point factory.
func WithInvokerFactory(f InvokerFactory) Option {
	return func(r *Registry) {
		r.newEntryPoint = f
	}
}

// New creates an empty Registry with no search paths.
func New(opts ...Option) *Registry {
	r := &Registry{
		loaders:       codeunit.DefaultLoaders(),
		newEntryPoint: invoke.New,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// AddSearchPath appends a directory to the search paths.
// It fails with ErrRegistryLocked once RegisterPlugins has been called.
func (r *Registry) AddSearchPath(path string) error {
	if r.phase != phaseConfiguring {
		return fmt.Errorf("%w: %s", ErrRegistryLocked, path)
	}

	r.searchPaths = append(r.searchPaths, path)

	return nil
}

// SearchPaths returns the search paths in the order they were added.
func (r *Registry) SearchPaths() []string {
	return slices.Clone(r.searchPaths)
}

// RegisterPlugins runs the registration pass over every search path.
// It may only be called once. On error no handlers are registered and all queries fail.
func (r *Registry) RegisterPlugins(ctx context.Context) error {
	if r.phase != phaseConfiguring {
		return ErrAlreadyRegistered
	}

	descriptors, err := r.discover(ctx)
	if err != nil {
		r.phase = phaseFailed
		r.err = err

		return err
	}

	r.descriptors = descriptors
	r.phase = phaseRegistered

	ctxlog.Debug(ctx, "registration complete", "handlers", len(descriptors), "searchPaths", len(r.searchPaths))

	return nil
}

// Handlers returns every registered handler in registration order.
func (r *Registry) Handlers() ([]*handler.Descriptor, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	return slices.Clone(r.descriptors), nil
}

// Len returns the number of registered handlers. It is zero unless registration succeeded.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

func (r *Registry) ready() error {
	switch r.phase {
	case phaseRegistered:
		return nil
	case phaseFailed:
		return fmt.Errorf("%w: registration failed: %w", ErrNotRegistered, r.err)
	default:
		return ErrNotRegistered
	}
}

// candidate is a file in a search path that a loader accepts.
type candidate struct {
	path   string
	loader codeunit.Loader
}

func (r *Registry) discover(ctx context.Context) ([]*handler.Descriptor, error) {
	fs := codeunit.FsFactory()

	var descriptors []*handler.Descriptor

	for _, dir := range r.searchPaths {
		candidates, err := r.candidates(ctx, fs, dir)
		if err != nil {
			return nil, err
		}

		for _, c := range candidates {
			d, err := r.build(ctx, fs, c)
			if err != nil {
				return nil, err
			}

			if d != nil {
				descriptors = append(descriptors, d)
			}
		}
	}

	return descriptors, nil
}

// candidates lists the manifests directly inside dir, sorted by file name.
// A directory that does not exist has no candidates.
func (r *Registry) candidates(ctx context.Context, fs afero.Fs, dir string) ([]candidate, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ctxlog.Debug(ctx, "search path does not exist", "path", dir)
			return nil, nil
		}

		return nil, fmt.Errorf("%w: %s: %w", ErrSearchPath, dir, err)
	}

	var out []candidate

	for _, e := range entries {
		l := r.loaders.Match(e.Name())
		if l == nil {
			continue
		}

		path := filepath.Join(dir, e.Name())

		regular, err := isRegularFile(fs, path, e)
		if err != nil {
			return nil, codeunit.NewLoadError(path, err)
		}

		if !regular {
			ctxlog.Debug(ctx, "ignoring non-regular file", "path", path)
			continue
		}

		out = append(out, candidate{path: path, loader: l})
	}

	return out, nil
}

// isRegularFile reports whether the entry is a regular file, following a symbolic link.
// It fails when the link target cannot be read, e.g. a dangling link.
func isRegularFile(fs afero.Fs, path string, fi os.FileInfo) (bool, error) {
	if fi.Mode()&os.ModeSymlink == 0 {
		return fi.Mode().IsRegular(), nil
	}

	target, err := fs.Stat(path)
	if err != nil {
		return false, err
	}

	return target.Mode().IsRegular(), nil
}

// build loads and validates one candidate.
// It returns a nil descriptor when the manifest does not declare the handler contract.
func (r *Registry) build(ctx context.Context, fs afero.Fs, c candidate) (*handler.Descriptor, error) {
	unit, err := c.loader.Load(ctx, fs, c.path)
	if err != nil {
		return nil, err
	}

	res := contract.Validate(unit)

	switch res.Kind {
	case contract.Skip:
		ctxlog.Debug(ctx, "skipping code unit", "path", unit.Path, "missing", res.Missing)
		return nil, nil
	case contract.Fatal:
		return nil, res.Err
	}

	entry, err := r.newEntryPoint(unit.Dir(), res.Fields.Loader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEntryPoint, unit.Path, err)
	}

	d := handler.NewDescriptor(unit.Name, unit.Path, res.Fields.Category, res.Fields.Types, entry)

	ctxlog.Debug(ctx, "registered handler",
		"name", d.Name(),
		"category", d.Category().String(),
		"types", d.SupportedTypes(),
	)

	return d, nil
}
