// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/yaam"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/find"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/handlers"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/paths"
	"github.com/matt-FFFFFF/yaam/cmd/yaam/run"
	"github.com/matt-FFFFFF/yaam/internal/config"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/matt-FFFFFF/yaam/internal/pluginregistry"
	"github.com/urfave/cli/v3"
)

const (
	configFlag     = "config"
	pluginPathFlag = "plugin-path"
	logLevelFlag   = "log-level"
	logFormatFlag  = "log-format"
)

// newRootCmd creates the root command for the CLI.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "yaam",
		Usage: "yaam run model.fbx texture.dds",
		Description: `yaam finds asset and texture handlers in plugin directories and runs them on files.
A handler is a *.plugin.hcl or *.plugin.yaml manifest declaring a category, the file types it
accepts and a loader: either a builtin ("builtin:sha256") or a program to run with the file path.`,
		Version:   fmt.Sprintf("%s (commit: %s)", yaam.Version, yaam.Commit),
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Usage:     "Config file, a local path or a go-getter source",
				Sources:   cli.EnvVars(config.ConfigEnvVar),
				TakesFile: true,
			},
			&cli.StringSliceFlag{
				Name:    pluginPathFlag,
				Aliases: []string{"p"},
				Usage:   "Add a plugin search path, searched after the built-in, environment and config file paths",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "Log level: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Usage: fmt.Sprintf("Log format: %s, %s or %s", ctxlog.FormatPretty, ctxlog.FormatText, ctxlog.FormatJSON),
			},
		},
		Before: beforeFunc,
		Commands: []*cli.Command{
			handlers.New(),
			find.New(),
			run.New(),
			paths.New(),
		},
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// beforeFunc resolves the settings, configures logging and puts an unregistered registry in the context.
func beforeFunc(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	settings, err := config.Resolve(ctx, config.Options{
		ConfigPath:  cmd.String(configFlag),
		PluginPaths: cmd.StringSlice(pluginPathFlag),
		LogLevel:    cmd.String(logLevelFlag),
		LogFormat:   cmd.String(logFormatFlag),
	})
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	if level, ok := ctxlog.ParseLevel(settings.LogLevel); ok {
		ctxlog.LevelVar.Set(level)
	}

	logger, err := ctxlog.NewLogger(settings.LogFormat, cmd.Root().ErrWriter)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	ctx = ctxlog.New(ctx, logger)

	r := pluginregistry.New()
	for _, p := range settings.SearchPaths {
		if err := r.AddSearchPath(p); err != nil {
			return ctx, err
		}
	}

	ctxlog.Debug(ctx, "search paths configured", "paths", settings.SearchPaths)

	return pluginregistry.NewContext(ctx, r), nil
}
