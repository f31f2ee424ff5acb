// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/yaam/internal/handler"
	"github.com/zclconf/go-cty/cty"
)

// BuiltinPrefix marks a loader that names a compiled-in function.
const BuiltinPrefix = "builtin:"

// Func is the entry point produced by New.
type Func = handler.EntryPoint

// New creates the entry point for a loader declaration.
// manifestDir is the directory of the manifest, used to resolve relative program paths.
func New(manifestDir string, loader cty.Value) (Func, error) {
	argv, err := argvOf(loader)
	if err != nil {
		return nil, err
	}

	if name, ok := strings.CutPrefix(argv[0], BuiltinPrefix); ok {
		if len(argv) > 1 {
			return nil, fmt.Errorf("%w: %s", ErrBuiltinArgs, argv[0])
		}

		fn, err := DefaultBuiltins.Lookup(name)
		if err != nil {
			return nil, err
		}

		return runBuiltin(name, fn), nil
	}

	return NewProgram(manifestDir, argv).Run, nil
}

func argvOf(loader cty.Value) ([]string, error) {
	if loader.IsNull() || !loader.IsWhollyKnown() {
		return nil, ErrInvalidLoader
	}

	ty := loader.Type()

	var argv []string

	switch {
	case ty.Equals(cty.String):
		argv = []string{loader.AsString()}
	case ty.IsListType() || ty.IsTupleType():
		for it := loader.ElementIterator(); it.Next(); {
			_, v := it.Element()
			if v.IsNull() || !v.Type().Equals(cty.String) {
				return nil, fmt.Errorf("%w: arguments must be strings", ErrInvalidLoader)
			}

			argv = append(argv, v.AsString())
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidLoader, ty.FriendlyName())
	}

	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyProgram
	}

	return argv, nil
}
