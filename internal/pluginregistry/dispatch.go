// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package pluginregistry

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/matt-FFFFFF/yaam/internal/handler"
)

// FindHandlers returns, in registration order, the handlers that accept filePath.
// handler.CategoryAny matches every category. No match is not an error.
func (r *Registry) FindHandlers(filePath string, category handler.Category) ([]*handler.Descriptor, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var out []*handler.Descriptor

	for _, d := range r.descriptors {
		if category != handler.CategoryAny && d.Category() != category {
			continue
		}

		if d.CanHandle(filePath) {
			out = append(out, d)
		}
	}

	return out, nil
}

// RunAll runs every matching handler in registration order, continuing after failures.
// A single failure is returned as it is; several are returned together in a *multierror.Error.
func (r *Registry) RunAll(ctx context.Context, filePath string, category handler.Category) error {
	handlers, err := r.FindHandlers(filePath, category)
	if err != nil {
		return err
	}

	if len(handlers) == 0 {
		ctxlog.Debug(ctx, "no handler for file", "file", filePath, "category", category.String())
		return nil
	}

	var failures []error

	for _, d := range handlers {
		ctxlog.Debug(ctx, "running handler", "handler", d.Name(), "file", filePath)

		if err := d.Run(ctx, filePath); err != nil {
			ctxlog.Warn(ctx, "handler failed", "handler", d.Name(), "file", filePath, "error", err)
			failures = append(failures, err)
		}
	}

	switch len(failures) {
	case 0:
		return nil
	case 1:
		return failures[0]
	default:
		return multierror.Append(nil, failures...)
	}
}

// RunFirst runs the first matching handler by registration order.
// It returns ErrNoHandler when nothing matches.
func (r *Registry) RunFirst(ctx context.Context, filePath string, category handler.Category) error {
	handlers, err := r.FindHandlers(filePath, category)
	if err != nil {
		return err
	}

	if len(handlers) == 0 {
		return fmt.Errorf("%w: %s", ErrNoHandler, filePath)
	}

	d := handlers[0]
	ctxlog.Debug(ctx, "running handler", "handler", d.Name(), "file", filePath)

	return d.Run(ctx, filePath)
}
