// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGetterSource(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantSrc  string
		wantFile string
	}{
		{
			name:     "file at repository root with ref",
			src:      "git::https://example.com/repo.git//yaam.yaml?ref=main",
			wantSrc:  "git::https://example.com/repo.git?ref=main",
			wantFile: "yaam.yaml",
		},
		{
			name:     "file in subdirectory",
			src:      "git::https://example.com/repo.git//configs/yaam.yaml",
			wantSrc:  "git::https://example.com/repo.git//configs",
			wantFile: "yaam.yaml",
		},
		{
			name:     "no subdirectory",
			src:      "https://example.com/yaam.yaml",
			wantSrc:  "",
			wantFile: "",
		},
		{
			name:     "subdirectory without file",
			src:      "git::https://example.com/repo.git//configs/",
			wantSrc:  "",
			wantFile: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSrc, gotFile := splitGetterSource(tt.src)
			assert.Equal(t, tt.wantSrc, gotSrc)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}

func TestFetch_LocalFs(t *testing.T) {
	stubEnvironment(t, map[string]string{"/etc/yaam.yaml": "log_level: info\n"})

	b, err := Fetch(context.Background(), "/etc/yaam.yaml")
	require.NoError(t, err)
	assert.Equal(t, "log_level: info\n", string(b))
}

func TestFetch_Getter(t *testing.T) {
	// The memory filesystem does not hold the file, so the source goes through go-getter.
	stubEnvironment(t, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "yaam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugin_paths: [/srv/plugins]\n"), 0o644))

	f, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/plugins"}, f.PluginPaths)
}

func TestFetch_Empty(t *testing.T) {
	_, err := Fetch(context.Background(), "")
	require.ErrorIs(t, err, ErrReadConfig)
}
