// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, DefaultLogger, Logger(ctx))

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = New(ctx, logger)
	assert.Same(t, logger, Logger(ctx))

	Debug(ctx, "debug message", "k", "v")
	Info(ctx, "info message")
	Warn(ctx, "warn message")
	Error(ctx, "error message")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG msg=\"debug message\" k=v")
	assert.Contains(t, out, "level=INFO msg=\"info message\"")
	assert.Contains(t, out, "level=WARN msg=\"warn message\"")
	assert.Contains(t, out, "level=ERROR msg=\"error message\"")
}

func TestNewNilLogger(t *testing.T) {
	ctx := New(context.Background(), nil)
	assert.Same(t, DefaultLogger, Logger(ctx))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warning ", slog.LevelWarn, true},
		{"Error", slog.LevelError, true},
		{"", slog.LevelWarn, false},
		{"verbose", slog.LevelWarn, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnvVar, "debug")
	assert.Equal(t, slog.LevelDebug, logLevelFromEnv())

	t.Setenv(LevelEnvVar, "")
	assert.Equal(t, slog.LevelWarn, logLevelFromEnv())
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}

	for _, format := range []string{"", FormatPretty, FormatText, "JSON"} {
		logger, err := NewLogger(format, buf)
		require.NoError(t, err, format)
		assert.NotNil(t, logger)
	}

	_, err := NewLogger("xml", buf)
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewLoggerJSON(t *testing.T) {
	prev := LevelVar.Level()
	LevelVar.Set(slog.LevelInfo)
	t.Cleanup(func() { LevelVar.Set(prev) })

	buf := &bytes.Buffer{}
	logger, err := NewLogger(FormatJSON, buf)
	require.NoError(t, err)

	logger.Info("hello", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"n":1`)
}
