// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package contract decides whether a loaded code unit is a handler plugin.
//
// A unit that does not declare all of the required symbols is not a plugin and is skipped.
// A unit that declares them all but gets one of them wrong is a broken plugin, and that is
// fatal for the registration pass.
package contract

import (
	"fmt"

	"github.com/matt-FFFFFF/yaam/internal/codeunit"
	"github.com/matt-FFFFFF/yaam/internal/handler"
	"github.com/zclconf/go-cty/cty"
)

// Required symbol names.
const (
	SymbolCategory       = "category"
	SymbolSupportedTypes = "supported_types"
	SymbolLoader         = "loader"
)

// RequiredSymbols lists the symbols every handler plugin must declare.
var RequiredSymbols = []string{SymbolLoader, SymbolCategory, SymbolSupportedTypes}

// Kind is the outcome of validating a unit.
type Kind int

const (
	// Skip means the unit is not a handler plugin.
	Skip Kind = iota
	// Valid means the unit is a handler plugin and Result.Fields is set.
	Valid
	// Fatal means the unit is a broken handler plugin and Result.Err is set.
	Fatal
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Skip:
		return "skip"
	case Valid:
		return "valid"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Fields are the declared values of a valid handler plugin.
type Fields struct {
	Category handler.Category
	// Types is the declared file type markers, as written.
	Types []string
	// Loader is the raw entry point declaration.
	Loader cty.Value
}

// Result is the outcome of Validate.
type Result struct {
	Kind   Kind
	Fields Fields
	// Missing is the first required symbol that was not found, for Skip results.
	Missing string
	Err     error
}

// Validate checks unit against the handler contract. It has no side effects.
func Validate(unit *codeunit.Unit) Result {
	values := make(map[string]cty.Value, len(RequiredSymbols))

	for _, name := range RequiredSymbols {
		v, ok := unit.Lookup(name)
		if !ok {
			return Result{Kind: Skip, Missing: name}
		}

		values[name] = v
	}

	category, err := validateCategory(unit.Path, values[SymbolCategory])
	if err != nil {
		return Result{Kind: Fatal, Err: err}
	}

	types, err := validateSupportedTypes(unit.Path, values[SymbolSupportedTypes])
	if err != nil {
		return Result{Kind: Fatal, Err: err}
	}

	loader := values[SymbolLoader]
	if err := validateLoader(unit.Path, loader); err != nil {
		return Result{Kind: Fatal, Err: err}
	}

	return Result{
		Kind: Valid,
		Fields: Fields{
			Category: category,
			Types:    types,
			Loader:   loader,
		},
	}
}

func validateCategory(path string, v cty.Value) (handler.Category, error) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.String) {
		return handler.CategoryAny, NewInvalidCategoryError(renderValue(v), path)
	}

	tag := v.AsString()

	c, ok := handler.ParseCategory(tag)
	if !ok {
		return handler.CategoryAny, NewInvalidCategoryError(tag, path)
	}

	return c, nil
}

func validateSupportedTypes(path string, v cty.Value) ([]string, error) {
	if v.IsNull() {
		return nil, NewContractError(path, SymbolSupportedTypes, "must not be null")
	}

	if !v.IsWhollyKnown() {
		return nil, NewContractError(path, SymbolSupportedTypes, "value is not known")
	}

	ty := v.Type()

	var types []string

	switch {
	case ty.IsMapType() || ty.IsObjectType():
		for it := v.ElementIterator(); it.Next(); {
			k, _ := it.Element()
			types = append(types, k.AsString())
		}
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			if e.IsNull() || !e.Type().Equals(cty.String) {
				return nil, NewContractError(path, SymbolSupportedTypes,
					fmt.Sprintf("elements must be strings, found %s", renderValue(e)))
			}

			types = append(types, e.AsString())
		}
	default:
		return nil, NewContractError(path, SymbolSupportedTypes,
			fmt.Sprintf("must be a list of file types or a map keyed by file type, found %s", ty.FriendlyName()))
	}

	if len(types) == 0 {
		return nil, NewContractError(path, SymbolSupportedTypes, "must declare at least one file type")
	}

	return types, nil
}

func validateLoader(path string, v cty.Value) error {
	if v.IsNull() {
		return NewContractError(path, SymbolLoader, "must not be null")
	}

	if !v.IsWhollyKnown() {
		return NewContractError(path, SymbolLoader, "value is not known")
	}

	ty := v.Type()

	switch {
	case ty.Equals(cty.String):
		if v.AsString() == "" {
			return NewContractError(path, SymbolLoader, "must not be empty")
		}
	case ty.IsListType() || ty.IsTupleType():
		if v.LengthInt() == 0 {
			return NewContractError(path, SymbolLoader, "must not be empty")
		}

		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			if e.IsNull() || !e.Type().Equals(cty.String) {
				return NewContractError(path, SymbolLoader,
					fmt.Sprintf("arguments must be strings, found %s", renderValue(e)))
			}
		}
	default:
		return NewContractError(path, SymbolLoader,
			fmt.Sprintf("must be a string or a list of strings, found %s", ty.FriendlyName()))
	}

	return nil
}

// renderValue formats a value for error messages.
func renderValue(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "(unknown)"
	case v.Type().Equals(cty.String):
		return v.AsString()
	case v.Type().Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1)
	case v.Type().Equals(cty.Bool):
		return fmt.Sprint(v.True())
	default:
		return "(" + v.Type().FriendlyName() + ")"
	}
}
