// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package handlers implements the handlers subcommand, which lists the registered handlers.
package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/cmdstate"
	"github.com/matt-FFFFFF/yaam/internal/color"
	"github.com/matt-FFFFFF/yaam/internal/handler"
	"github.com/urfave/cli/v3"
)

const (
	jsonFlag     = "json"
	jsonIndent   = 2
	cellPadding  = 1
	headerColour = "12"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(headerColour)).Padding(0, cellPadding)
	cellStyle   = lipgloss.NewStyle().Padding(0, cellPadding)
)

// New returns the handlers command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "handlers",
		Usage: "List the registered handlers",
		Description: `List every handler found in the plugin search paths, in registration order.
Registration order decides which handler runs first when several accept the same file type.`,
		Flags: []cli.Flag{
			cmdstate.NewCategoryFlag(),
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Write the list as JSON",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	category, err := cmdstate.Category(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	r, err := cmdstate.Registry(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to register plugins: %s", err.Error()), 1)
	}

	all, err := r.Handlers()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var hs []*handler.Descriptor

	for _, d := range all {
		if category == handler.CategoryAny || d.Category() == category {
			hs = append(hs, d)
		}
	}

	w := cmd.Root().Writer

	if cmd.Bool(jsonFlag) {
		return writeJSON(w, hs)
	}

	return writeTable(w, hs)
}

func writeTable(w io.Writer, hs []*handler.Descriptor) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "CATEGORY", "TYPES", "SOURCE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, d := range hs {
		t.Row(d.Name(), d.Category().String(), strings.Join(d.SupportedTypes(), " "), d.Source())
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

func writeJSON(w io.Writer, hs []*handler.Descriptor) error {
	list := make([]any, 0, len(hs))

	for _, d := range hs {
		types := make([]any, 0, len(d.SupportedTypes()))
		for _, ft := range d.SupportedTypes() {
			types = append(types, ft)
		}

		list = append(list, map[string]any{
			"name":            d.Name(),
			"category":        d.Category().String(),
			"supported_types": types,
			"source":          d.Source(),
		})
	}

	f := colorjson.NewFormatter()
	f.Indent = jsonIndent

	if !color.Enabled() {
		f.DisabledColor = true
		f.KeyColor.DisableColor()
	}

	b, err := f.Marshal(list)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}
