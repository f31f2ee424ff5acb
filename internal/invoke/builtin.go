// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
)

// Builtins maps builtin names to their functions.
type Builtins map[string]Func

// DefaultBuiltins holds the builtins added with Register.
var DefaultBuiltins = make(Builtins)

// Register adds a builtin to DefaultBuiltins, replacing any builtin with the same name.
// It is intended to be called from init functions.
func Register(name string, fn Func) {
	DefaultBuiltins[name] = fn
}

// Lookup returns the named builtin.
func (b Builtins) Lookup(name string) (Func, error) {
	fn, ok := b[name]
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: %q, registered builtins are [%s]", ErrUnknownBuiltin, name, strings.Join(b.Names(), ", "))
	}

	return fn, nil
}

// Names returns the registered builtin names, sorted.
func (b Builtins) Names() []string {
	return slices.Sorted(maps.Keys(b))
}

// runBuiltin wraps fn so that a panic is returned as a *PanicError and
// context cancellation returns without waiting for fn.
func runBuiltin(name string, fn Func) Func {
	return func(ctx context.Context, filePath string) error {
		logger := ctxlog.Logger(ctx).With("builtin", name)

		errCh := make(chan error, 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("builtin panicked", "panic", r)
					errCh <- &PanicError{Builtin: name, Value: r}
				}
			}()

			logger.Debug("running builtin", "file", filePath)
			errCh <- fn(ctx, filePath)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Debug("builtin context cancelled", "error", ctx.Err())
			return ctx.Err()
		}
	}
}
