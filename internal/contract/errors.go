// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package contract

import (
	"fmt"

	"github.com/matt-FFFFFF/yaam/internal/handler"
)

// InvalidCategoryError is returned when a plugin declares a category tag that is not known.
type InvalidCategoryError struct {
	Tag  string
	Path string
}

// NewInvalidCategoryError creates a new InvalidCategoryError.
func NewInvalidCategoryError(tag, path string) *InvalidCategoryError {
	return &InvalidCategoryError{Tag: tag, Path: path}
}

// Error implements the error interface for InvalidCategoryError.
func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("%q is not a valid category (declared in %s), valid categories are %v",
		e.Tag, e.Path, handler.CategoryTags())
}

// Unwrap allows errors.Is(err, handler.ErrUnknownCategory).
func (e *InvalidCategoryError) Unwrap() error {
	return handler.ErrUnknownCategory
}

// ContractError is returned when a plugin declares a required symbol with an unusable value.
type ContractError struct {
	Path   string
	Symbol string
	Reason string
}

// NewContractError creates a new ContractError.
func NewContractError(path, symbol, reason string) *ContractError {
	return &ContractError{Path: path, Symbol: symbol, Reason: reason}
}

// Error implements the error interface for ContractError.
func (e *ContractError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %s", e.Symbol, e.Path, e.Reason)
}
