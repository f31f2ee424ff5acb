// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// Code that has a context logs through Logger(ctx) or the Info/Debug/Warn/Error helpers, so the
// CLI decides once where logs go and in which format. The default logger writes to stderr with
// a pretty console handler; stdout is left for command output.
//
// The level is shared by every logger in the package through LevelVar. It starts from the
// YAAM_LOG_LEVEL environment variable ("DEBUG", "INFO", "WARN" or "ERROR", default "WARN").
package ctxlog
