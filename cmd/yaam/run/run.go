// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run subcommand, which passes files to their handlers.
package run

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/cmdstate"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const firstFlag = "first"

// New returns the run command.
func New() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the handlers for one or more files",
		ArgsUsage: "FILE...",
		Description: `Run every handler that accepts each file, in registration order.
A failing handler does not stop the others; all failures are reported at the end.
With --first only the first matching handler runs, and a file without a handler is an error.`,
		Flags: []cli.Flag{
			cmdstate.NewCategoryFlag(),
			&cli.BoolFlag{
				Name:  firstFlag,
				Usage: "Only run the first matching handler",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("Please provide at least one file", 1)
	}

	category, err := cmdstate.Category(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r, err := cmdstate.Registry(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to register plugins: %s", err.Error()), 1)
	}

	runFn := r.RunAll
	if cmd.Bool(firstFlag) {
		runFn = r.RunFirst
	}

	var result *multierror.Error

	for _, f := range files {
		if ctx.Err() != nil {
			result = multierror.Append(result, ctx.Err())
			break
		}

		if err := runFn(ctx, f, category); err != nil {
			ctxlog.Error(ctx, "failed to handle file", "file", f, "error", err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", f, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
