// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package paths implements the paths subcommand.
package paths

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/yaam/internal/pluginregistry"
	"github.com/urfave/cli/v3"
)

// New returns the paths command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "Print the plugin search paths in the order they are searched",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			r, err := pluginregistry.FromContext(ctx)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			for _, p := range r.SearchPaths() {
				if _, err := fmt.Fprintln(cmd.Root().Writer, p); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
