// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package codeunit

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// HCLExt is the file suffix of HCL manifests.
const HCLExt = ".plugin.hcl"

var _ Loader = (*HCLLoader)(nil)

// HCLLoader loads HCL manifests.
type HCLLoader struct{}

// Pattern implements Loader.
func (l *HCLLoader) Pattern() string {
	return "*" + HCLExt
}

// Load implements Loader.
func (l *HCLLoader) Load(_ context.Context, fs afero.Fs, path string) (*Unit, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	file, diags := hclsyntax.ParseConfig(content, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, NewLoadError(path, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, NewLoadError(path, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unexpected body type",
			Detail:   "The manifest could not be read as native HCL syntax.",
		}})
	}

	evalCtx := manifestEvalContext(filepath.Dir(path))
	symbols := make(map[string]cty.Value, len(body.Attributes))

	for name, attr := range body.Attributes {
		v, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)

		if valDiags.HasErrors() {
			continue
		}

		symbols[name] = v
	}

	if diags.HasErrors() {
		return nil, NewLoadError(path, diags)
	}

	return &Unit{
		Name:    strings.TrimSuffix(filepath.Base(path), HCLExt),
		Path:    path,
		Symbols: symbols,
	}, nil
}

func manifestEvalContext(dir string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"path": cty.ObjectVal(map[string]cty.Value{
				"module": cty.StringVal(dir),
			}),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
		},
	}
}
