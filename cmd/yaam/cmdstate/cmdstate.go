// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds the state shared by the yaam subcommands.
// The root command stores the configured registry in the context; subcommands
// that need handlers call Registry, which runs the registration pass on first use.
package cmdstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/yaam/internal/handler"
	"github.com/matt-FFFFFF/yaam/internal/pluginregistry"
	"github.com/urfave/cli/v3"
)

// CategoryFlag is the name of the --category flag used by several subcommands.
const CategoryFlag = "category"

// NewCategoryFlag returns the --category flag.
func NewCategoryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    CategoryFlag,
		Aliases: []string{"c"},
		Usage:   fmt.Sprintf("Only consider handlers of this category %v", handler.CategoryTags()),
	}
}

// Category returns the category selected with --category, or handler.CategoryAny.
func Category(cmd *cli.Command) (handler.Category, error) {
	tag := cmd.String(CategoryFlag)
	if tag == "" {
		return handler.CategoryAny, nil
	}

	return handler.LookupCategory(tag)
}

// Registry returns the registry from ctx, registering plugins if that has not happened yet.
func Registry(ctx context.Context) (*pluginregistry.Registry, error) {
	r, err := pluginregistry.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.RegisterPlugins(ctx); err != nil && !errors.Is(err, pluginregistry.ErrAlreadyRegistered) {
		return nil, err
	}

	// Reports the cause when an earlier pass failed.
	if _, err := r.Handlers(); err != nil {
		return nil, err
	}

	return r, nil
}
