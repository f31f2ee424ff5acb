// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package codeunit

import (
	"context"
	"math"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func memFsWithFile(t *testing.T, path, content string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))

	return fs
}

func TestLoadersMatch(t *testing.T) {
	ls := DefaultLoaders()

	assert.IsType(t, &HCLLoader{}, ls.Match("dds.plugin.hcl"))
	assert.IsType(t, &YAMLLoader{}, ls.Match("fbx.plugin.yaml"))
	assert.Nil(t, ls.Match("dds.hcl"))
	assert.Nil(t, ls.Match("README.md"))
	assert.Equal(t, []string{"*.plugin.hcl", "*.plugin.yaml"}, ls.Patterns())
}

func TestHCLLoader(t *testing.T) {
	content := `
category        = "texture"
supported_types = [".dds", upper(".png")]
loader          = ["${path.module}/bin/texconv", "--import"]

metadata {
  author = "ignored"
}
`
	fs := memFsWithFile(t, "/plugins/dds.plugin.hcl", content)

	unit, err := (&HCLLoader{}).Load(context.Background(), fs, "/plugins/dds.plugin.hcl")
	require.NoError(t, err)

	assert.Equal(t, "dds", unit.Name)
	assert.Equal(t, "/plugins", unit.Dir())
	assert.Equal(t, []string{"category", "loader", "supported_types"}, unit.SymbolNames())

	cat, ok := unit.Lookup("category")
	require.True(t, ok)
	assert.Equal(t, cty.StringVal("texture"), cat)

	types, ok := unit.Lookup("supported_types")
	require.True(t, ok)
	assert.Equal(t, cty.TupleVal([]cty.Value{cty.StringVal(".dds"), cty.StringVal(".PNG")}), types)

	loader, ok := unit.Lookup("loader")
	require.True(t, ok)
	assert.Equal(t, "/plugins/bin/texconv", loader.Index(cty.NumberIntVal(0)).AsString())
}

func TestHCLLoaderNullIsPresent(t *testing.T) {
	fs := memFsWithFile(t, "/p/x.plugin.hcl", `category = null`)

	unit, err := (&HCLLoader{}).Load(context.Background(), fs, "/p/x.plugin.hcl")
	require.NoError(t, err)

	v, ok := unit.Lookup("category")
	require.True(t, ok)
	assert.True(t, v.IsNull())

	_, ok = unit.Lookup("loader")
	assert.False(t, ok)
}

func TestHCLLoaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `category = "texture`},
		{name: "unknown variable", content: `category = var.kind`},
		{name: "unknown function", content: `category = kind("x")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memFsWithFile(t, "/p/bad.plugin.hcl", tt.content)

			_, err := (&HCLLoader{}).Load(context.Background(), fs, "/p/bad.plugin.hcl")
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "/p/bad.plugin.hcl", loadErr.Path)

			var diags hcl.Diagnostics
			assert.ErrorAs(t, err, &diags)
		})
	}
}

func TestHCLLoaderMissingFile(t *testing.T) {
	_, err := (&HCLLoader{}).Load(context.Background(), afero.NewMemMapFs(), "/p/none.plugin.hcl")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestYAMLLoader(t *testing.T) {
	content := `
category: asset
supported_types:
  .fbx: Autodesk FBX
  .OBJ: Wavefront
loader: builtin:stat
priority: 3
enabled: true
`
	fs := memFsWithFile(t, "/plugins/mesh.plugin.yaml", content)

	unit, err := (&YAMLLoader{}).Load(context.Background(), fs, "/plugins/mesh.plugin.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mesh", unit.Name)

	cat, ok := unit.Lookup("category")
	require.True(t, ok)
	assert.Equal(t, "asset", cat.AsString())

	types, ok := unit.Lookup("supported_types")
	require.True(t, ok)
	assert.True(t, types.Type().IsObjectType())
	assert.True(t, types.Type().HasAttribute(".OBJ"))

	prio, ok := unit.Lookup("priority")
	require.True(t, ok)
	assert.Equal(t, cty.Number, prio.Type())

	enabled, ok := unit.Lookup("enabled")
	require.True(t, ok)
	assert.True(t, enabled.True())
}

func TestYAMLLoaderEmptyDocument(t *testing.T) {
	fs := memFsWithFile(t, "/p/empty.plugin.yaml", "")

	unit, err := (&YAMLLoader{}).Load(context.Background(), fs, "/p/empty.plugin.yaml")
	require.NoError(t, err)
	assert.Empty(t, unit.Symbols)
}

func TestYAMLLoaderNotAMapping(t *testing.T) {
	fs := memFsWithFile(t, "/p/list.plugin.yaml", "- a\n- b\n")

	_, err := (&YAMLLoader{}).Load(context.Background(), fs, "/p/list.plugin.yaml")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestYAMLLoaderNullIsPresent(t *testing.T) {
	fs := memFsWithFile(t, "/p/x.plugin.yaml", "category:\nloader: a\n")

	unit, err := (&YAMLLoader{}).Load(context.Background(), fs, "/p/x.plugin.yaml")
	require.NoError(t, err)

	v, ok := unit.Lookup("category")
	require.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestYAMLLoaderNaN(t *testing.T) {
	content := `
category: asset
supported_types: [".fbx"]
loader: a
weight: .nan
`
	fs := memFsWithFile(t, "/p/nan.plugin.yaml", content)

	var err error

	require.NotPanics(t, func() {
		_, err = (&YAMLLoader{}).Load(context.Background(), fs, "/p/nan.plugin.yaml")
	})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/p/nan.plugin.yaml", loadErr.Path)
	require.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), `"weight"`)
}

func TestYAMLLoaderNumbers(t *testing.T) {
	content := `
negative: -5
big: 4294967296
ratio: 0.5
up: .inf
down: -.inf
`
	fs := memFsWithFile(t, "/p/num.plugin.yaml", content)

	unit, err := (&YAMLLoader{}).Load(context.Background(), fs, "/p/num.plugin.yaml")
	require.NoError(t, err)

	want := map[string]cty.Value{
		"negative": cty.NumberIntVal(-5),
		"big":      cty.NumberIntVal(4294967296),
		"ratio":    cty.NumberFloatVal(0.5),
		"up":       cty.PositiveInfinity,
		"down":     cty.NegativeInfinity,
	}

	for name, w := range want {
		got, ok := unit.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, got.RawEquals(w), "%s: got %#v, want %#v", name, got, w)
	}
}

func TestToCtyValue(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want cty.Value
	}{
		{name: "nil", raw: nil, want: cty.NullVal(cty.DynamicPseudoType)},
		{name: "string", raw: "a", want: cty.StringVal("a")},
		{name: "bool", raw: true, want: cty.True},
		{name: "int", raw: 7, want: cty.NumberIntVal(7)},
		{name: "negative int64", raw: int64(-3), want: cty.NumberIntVal(-3)},
		{name: "large uint64", raw: uint64(math.MaxUint64), want: cty.NumberUIntVal(math.MaxUint64)},
		{name: "float", raw: 1.5, want: cty.NumberFloatVal(1.5)},
		{name: "positive infinity", raw: math.Inf(1), want: cty.PositiveInfinity},
		{name: "negative infinity", raw: math.Inf(-1), want: cty.NegativeInfinity},
		{name: "empty list", raw: []any{}, want: cty.EmptyTupleVal},
		{name: "empty map", raw: map[string]any{}, want: cty.EmptyObjectVal},
		{
			name: "list",
			raw:  []any{"a", 1},
			want: cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
		},
		{
			name: "nested map",
			raw:  map[string]any{"outer": map[string]any{"inner": int64(-1)}},
			want: cty.ObjectVal(map[string]cty.Value{
				"outer": cty.ObjectVal(map[string]cty.Value{"inner": cty.NumberIntVal(-1)}),
			}),
		},
		{
			name: "map with non-string keys",
			raw:  map[any]any{1: "one"},
			want: cty.ObjectVal(map[string]cty.Value{"1": cty.StringVal("one")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toCtyValue(tt.raw)
			require.NoError(t, err)
			assert.True(t, got.RawEquals(tt.want), "got %#v, want %#v", got, tt.want)
		})
	}
}

func TestToCtyValueErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{name: "NaN", raw: math.NaN()},
		{name: "NaN in a list", raw: []any{"a", math.NaN()}},
		{name: "NaN in a map", raw: map[string]any{"w": math.NaN()}},
		{name: "struct", raw: struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toCtyValue(tt.raw)
			require.ErrorIs(t, err, ErrUnsupportedValue)
		})
	}
}
