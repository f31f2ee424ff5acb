// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	getterSubdirSeparator = "//"
	getterQuerySeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// ErrFetchConfig is returned when a remote config file cannot be retrieved.
var ErrFetchConfig = errors.New("failed to fetch config file")

// Fetch returns the content of the config file at src.
// A path that exists on FsFactory is read directly. Anything else is treated as a
// go-getter source, e.g. "git::https://example.com/repo.git//yaam.yaml?ref=main".
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrReadConfig)
	}

	fs := FsFactory()
	if ok, _ := afero.Exists(fs, src); ok {
		b, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadConfig, src, err)
		}

		return b, nil
	}

	ctxlog.Debug(ctx, "fetching config file", "source", src)

	return fetchGetter(ctx, src)
}

func fetchGetter(ctx context.Context, src string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "yaam-config-*")
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "src"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	// Sources with a "//" subdirectory are fetched as a directory and the file is read from it.
	var fileName string

	switch local, err := getter.Detect(req, &getter.FileGetter{}); {
	case err != nil:
		return nil, errors.Join(ErrFetchConfig, err)
	case local:
		req.Src = filepath.Dir(src)
		fileName = filepath.Base(src)
	default:
		if dirSrc, name := splitGetterSource(src); name != "" {
			req.Src, fileName = dirSrc, name
		} else {
			req.GetMode = getter.ModeFile
		}
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	path := res.Dst
	if fileName != "" {
		path = filepath.Join(res.Dst, fileName)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFetchConfig, err)
	}

	return b, nil
}

// splitGetterSource splits the file name off a go-getter source with a "//" subdirectory.
// Any query string is kept on the returned source. The file name is empty when src has no subdirectory.
func splitGetterSource(src string) (string, string) {
	parts := strings.Split(src, getterSubdirSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	var query string
	if i := strings.Index(last, getterQuerySeparator); i >= 0 {
		last, query = last[:i], last[i:]
	}

	dir, fileName := filepath.Split(last)
	if fileName == "" {
		return "", ""
	}

	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	return strings.Join(parts, getterSubdirSeparator) + query, fileName
}
