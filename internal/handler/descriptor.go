// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package handler

import (
	"context"
)

// EntryPoint processes a single file. Errors are returned to the caller as they are.
type EntryPoint func(ctx context.Context, filePath string) error

// Descriptor is a validated, registered handler.
type Descriptor struct {
	name     string
	source   string
	category Category
	types    TypeSet
	entry    EntryPoint
}

// NewDescriptor creates a Descriptor.
// name and source identify where the handler came from and are only used for display.
func NewDescriptor(name, source string, category Category, types []string, entry EntryPoint) *Descriptor {
	return &Descriptor{
		name:     name,
		source:   source,
		category: category,
		types:    NewTypeSet(types...),
		entry:    entry,
	}
}

// Name returns the handler name, derived from the manifest file name.
func (d *Descriptor) Name() string {
	return d.name
}

// Source returns the path of the manifest the handler was registered from.
func (d *Descriptor) Source() string {
	return d.source
}

// Category returns the category of the handler.
func (d *Descriptor) Category() Category {
	return d.category
}

// SupportedTypes returns the file type markers the handler accepts, sorted.
func (d *Descriptor) SupportedTypes() []string {
	return d.types.Sorted()
}

// CanHandle reports whether the file type of filePath is one the handler accepts.
func (d *Descriptor) CanHandle(filePath string) bool {
	return d.types.Contains(FileTypeOf(filePath))
}

// Run calls the handler entry point with filePath.
func (d *Descriptor) Run(ctx context.Context, filePath string) error {
	return d.entry(ctx, filePath)
}
