// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package codeunit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// YAMLExt is the file suffix of YAML manifests.
const YAMLExt = ".plugin.yaml"

// ErrUnsupportedValue is returned when a YAML manifest holds a value that has no cty equivalent.
var ErrUnsupportedValue = errors.New("unsupported value in manifest")

var _ Loader = (*YAMLLoader)(nil)

// YAMLLoader loads YAML manifests.
type YAMLLoader struct{}

// Pattern implements Loader.
func (l *YAMLLoader) Pattern() string {
	return "*" + YAMLExt
}

// Load implements Loader.
func (l *YAMLLoader) Load(_ context.Context, fs afero.Fs, path string) (*Unit, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, NewLoadError(path, err)
	}

	symbols := make(map[string]cty.Value, len(doc))

	for name, raw := range doc {
		v, err := toCtyValue(raw)
		if err != nil {
			return nil, NewLoadError(path, fmt.Errorf("symbol %q: %w", name, err))
		}

		symbols[name] = v
	}

	return &Unit{
		Name:    strings.TrimSuffix(filepath.Base(path), YAMLExt),
		Path:    path,
		Symbols: symbols,
	}, nil
}

func toCtyValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case uint64:
		return cty.NumberUIntVal(v), nil
	case float64:
		if math.IsNaN(v) {
			return cty.NilVal, fmt.Errorf("%w: NaN", ErrUnsupportedValue)
		}

		return cty.NumberFloatVal(v), nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}

		elems := make([]cty.Value, 0, len(v))

		for _, e := range v {
			ev, err := toCtyValue(e)
			if err != nil {
				return cty.NilVal, err
			}

			elems = append(elems, ev)
		}

		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}

		attrs := make(map[string]cty.Value, len(v))

		for k, e := range v {
			ev, err := toCtyValue(e)
			if err != nil {
				return cty.NilVal, err
			}

			attrs[k] = ev
		}

		return cty.ObjectVal(attrs), nil
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = e
		}

		return toCtyValue(m)
	default:
		return cty.NilVal, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}
