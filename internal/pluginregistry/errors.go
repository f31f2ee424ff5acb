// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pluginregistry

import "errors"

var (
	// ErrRegistryLocked is returned when a search path is added after registration.
	ErrRegistryLocked = errors.New("registry is locked, search paths cannot be added after registration")
	// ErrAlreadyRegistered is returned when RegisterPlugins is called more than once.
	ErrAlreadyRegistered = errors.New("plugins have already been registered")
	// ErrNotRegistered is returned by queries when registration has not completed successfully.
	ErrNotRegistered = errors.New("registry is not registered")
	// ErrSearchPath is returned when a search path exists but cannot be listed.
	ErrSearchPath = errors.New("cannot list search path")
	// ErrEntryPoint is returned when the loader of a valid manifest cannot be turned into an entry point.
	ErrEntryPoint = errors.New("cannot create handler entry point")
	// ErrNoHandler is returned by RunFirst when no handler matches.
	ErrNoHandler = errors.New("no handler found")
	// ErrNoRegistry is returned by FromContext when the context carries no registry.
	ErrNoRegistry = errors.New("no registry in context")
)
