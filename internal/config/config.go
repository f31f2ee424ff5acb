// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// PluginPathsEnvVar holds extra search paths separated by os.PathListSeparator.
	PluginPathsEnvVar = "YAAM_PLUGIN_PATHS"
	// ConfigEnvVar is the environment variable naming the config file.
	ConfigEnvVar = "YAAM_CONFIG"
	// BuiltinDirName is the name of the built-in plugins directory next to the executable.
	BuiltinDirName = "Plugins"
)

var (
	// ErrReadConfig is returned when the config file cannot be read.
	ErrReadConfig = errors.New("failed to read config file")
	// ErrInvalidYaml is returned when the config file is not valid YAML.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidConfig is returned when a setting has an invalid value.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrExecutable is returned when the location of the executable cannot be determined.
	ErrExecutable = errors.New("cannot determine executable location")
)

// FsFactory is a function that returns the filesystem the config file is read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// executable is os.Executable, replaceable in tests.
var executable = os.Executable

// File is the content of the YAML config file.
type File struct {
	PluginPaths []string `yaml:"plugin_paths"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
}

// Options are the values given on the command line.
type Options struct {
	// ConfigPath is the config file to read, a local path or a go-getter source.
	// Empty means no config file.
	ConfigPath  string
	PluginPaths []string
	LogLevel    string
	LogFormat   string
}

// Settings are the effective settings after all sources are combined.
type Settings struct {
	SearchPaths []string
	// LogLevel is empty when no source sets it, leaving the level from YAAM_LOG_LEVEL in place.
	LogLevel  string
	LogFormat string
}

// LoadFile retrieves and parses the config file at src. See Fetch for the accepted sources.
func LoadFile(ctx context.Context, src string) (*File, error) {
	b, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidYaml, src, err)
	}

	return f, nil
}

// BuiltinSearchPath returns the Plugins directory next to the running executable.
func BuiltinSearchPath() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", errors.Join(ErrExecutable, err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Join(filepath.Dir(exe), BuiltinDirName), nil
}

// EnvSearchPaths returns the search paths from YAAM_PLUGIN_PATHS.
func EnvSearchPaths() []string {
	return filepath.SplitList(os.Getenv(PluginPathsEnvVar))
}

// Resolve combines the built-in directory, the environment, the config file and opts.
// Flag values take precedence over the config file for log settings.
func Resolve(ctx context.Context, opts Options) (*Settings, error) {
	file := &File{}

	if opts.ConfigPath != "" {
		f, err := LoadFile(ctx, opts.ConfigPath)
		if err != nil {
			return nil, err
		}

		file = f
	}

	builtin, err := BuiltinSearchPath()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		SearchPaths: SearchPaths(builtin, EnvSearchPaths(), file.PluginPaths, opts.PluginPaths),
		LogLevel:    firstNonEmpty(opts.LogLevel, file.LogLevel),
		LogFormat:   firstNonEmpty(opts.LogFormat, file.LogFormat),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// SearchPaths concatenates the sources in order, dropping empty entries.
func SearchPaths(builtin string, sources ...[]string) []string {
	out := make([]string, 0, 1+len(sources))

	for _, p := range slices.Concat([]string{builtin}, slices.Concat(sources...)) {
		if strings.TrimSpace(p) == "" {
			continue
		}

		out = append(out, p)
	}

	return out
}

// Validate checks the log settings, reporting every problem.
func (s *Settings) Validate() error {
	var result error

	if s.LogLevel != "" {
		if _, ok := ctxlog.ParseLevel(s.LogLevel); !ok {
			result = multierror.Append(result, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s.LogLevel))
		}
	}

	switch strings.ToLower(s.LogFormat) {
	case "", ctxlog.FormatPretty, ctxlog.FormatText, ctxlog.FormatJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: log format %q", ErrInvalidConfig, s.LogFormat))
	}

	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
