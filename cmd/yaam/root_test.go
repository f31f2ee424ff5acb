// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/yaam/internal/config"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	shaManifest = `
category        = "asset"
supported_types = [".bin", ".fbx"]
loader          = "builtin:sha256"
`
	statManifest = `
category: texture
supported_types: [".dds"]
loader: builtin:stat
`
	copyManifest = `
category        = "texture"
supported_types = [".dds"]
loader          = ["${path.module}/copy.sh"]
`
)

type runResult struct {
	out string
	err error
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func pluginDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sha.plugin.hcl"), shaManifest, 0o644)
	writeFile(t, filepath.Join(dir, "stat.plugin.yaml"), statManifest, 0o644)

	return dir
}

func runCLI(t *testing.T, args ...string) runResult {
	t.Helper()

	t.Setenv(config.PluginPathsEnvVar, "")
	t.Setenv(config.ConfigEnvVar, "")
	t.Setenv(ctxlog.LevelEnvVar, "")

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.Writer = out
	cmd.ErrWriter = errOut
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := cmd.Run(context.Background(), append([]string{"yaam"}, args...))

	return runResult{out: out.String(), err: err}
}

func TestPaths(t *testing.T) {
	t.Setenv(config.PluginPathsEnvVar, "")

	res := runCLI(t, "--plugin-path", "/first", "-p", "/second", "paths")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, config.BuiltinDirName, filepath.Base(lines[0]))
	assert.Equal(t, []string{"/first", "/second"}, lines[1:])
}

func TestHandlersTable(t *testing.T) {
	dir := pluginDir(t)

	res := runCLI(t, "--plugin-path", dir, "handlers")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "NAME")
	assert.Contains(t, res.out, "sha")
	assert.Contains(t, res.out, ".bin .fbx")
	assert.Contains(t, res.out, "stat")
	assert.Less(t, strings.Index(res.out, "sha"), strings.Index(res.out, "stat"))
}

func TestHandlersJSONWithCategory(t *testing.T) {
	dir := pluginDir(t)

	res := runCLI(t, "--plugin-path", dir, "handlers", "--json", "--category", "texture")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, `"name": "stat"`)
	assert.Contains(t, res.out, `"category": "texture"`)
	assert.NotContains(t, res.out, `"name": "sha"`)
}

func TestHandlersUnknownCategory(t *testing.T) {
	res := runCLI(t, "--plugin-path", pluginDir(t), "handlers", "--category", "shader")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown category")
}

func TestHandlersRegistrationFailure(t *testing.T) {
	dir := pluginDir(t)
	writeFile(t, filepath.Join(dir, "bad.plugin.hcl"), `
category        = "shader"
supported_types = [".glsl"]
loader          = "builtin:stat"
`, 0o644)

	res := runCLI(t, "--plugin-path", dir, "handlers")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to register plugins")
	assert.Contains(t, res.err.Error(), "shader")
}

func TestFind(t *testing.T) {
	dir := pluginDir(t)

	res := runCLI(t, "--plugin-path", dir, "find", "model.FBX")
	require.NoError(t, res.err)
	assert.Equal(t, "sha\tasset\t"+filepath.Join(dir, "sha.plugin.hcl")+"\n", res.out)

	res = runCLI(t, "--plugin-path", dir, "find", "picture.jpg")
	require.NoError(t, res.err)
	assert.Empty(t, res.out)

	res = runCLI(t, "--plugin-path", dir, "find")
	require.Error(t, res.err)
}

func TestRunBuiltins(t *testing.T) {
	dir := pluginDir(t)
	data := t.TempDir()
	writeFile(t, filepath.Join(data, "mesh.bin"), "mesh", 0o644)
	writeFile(t, filepath.Join(data, "wall.dds"), "dds", 0o644)

	res := runCLI(t, "--plugin-path", dir, "run", filepath.Join(data, "mesh.bin"), filepath.Join(data, "wall.dds"))
	require.NoError(t, res.err)
}

func TestRunProgramHandler(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "copy.plugin.hcl"), copyManifest, 0o644)
	writeFile(t, filepath.Join(dir, "copy.sh"), "#!/bin/sh\ncp \"$1\" \"$1.imported\"\n", 0o755)

	data := t.TempDir()
	input := filepath.Join(data, "wall.dds")
	writeFile(t, input, "dds", 0o644)

	res := runCLI(t, "--plugin-path", dir, "run", "--first", input)
	require.NoError(t, res.err)
	assert.FileExists(t, input+".imported")
}

func TestRunFailures(t *testing.T) {
	dir := pluginDir(t)
	data := t.TempDir()

	res := runCLI(t, "--plugin-path", dir, "run", "--first", filepath.Join(data, "none.jpg"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no handler found")

	res = runCLI(t, "--plugin-path", dir, "run", filepath.Join(data, "missing.bin"))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "missing.bin")

	res = runCLI(t, "--plugin-path", dir, "run")
	require.Error(t, res.err)
}

func TestInvalidLogLevel(t *testing.T) {
	res := runCLI(t, "--log-level", "loud", "paths")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "log level")
}
