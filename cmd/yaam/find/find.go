// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package find implements the find subcommand.
package find

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/yaam/cmd/yaam/cmdstate"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// New returns the find command.
func New() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Show the handlers that accept a file, in the order they would run",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			cmdstate.NewCategoryFlag(),
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit("Please provide exactly one file", 1)
	}

	filePath := cmd.Args().First()

	category, err := cmdstate.Category(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r, err := cmdstate.Registry(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to register plugins: %s", err.Error()), 1)
	}

	hs, err := r.FindHandlers(filePath, category)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if len(hs) == 0 {
		ctxlog.Info(ctx, "no handler accepts file", "file", filePath, "category", category.String())
		return nil
	}

	w := cmd.Root().Writer
	for _, d := range hs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name(), d.Category(), d.Source()); err != nil {
			return err
		}
	}

	return nil
}
