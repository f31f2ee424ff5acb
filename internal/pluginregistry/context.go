// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pluginregistry

import "context"

type registryKey struct{}

// NewContext returns a copy of ctx carrying r.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry carried by ctx.
func FromContext(ctx context.Context) (*Registry, error) {
	r, ok := ctx.Value(registryKey{}).(*Registry)
	if !ok || r == nil {
		return nil, ErrNoRegistry
	}

	return r, nil
}
