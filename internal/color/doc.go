// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for terminal output.
// Detection honours NO_COLOR and FORCE_COLOR before falling back to a
// terminal check on stderr.
package color
