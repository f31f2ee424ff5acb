// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config assembles the runtime settings of yaam: the ordered plugin search paths
// and the log settings.
//
// Search paths come from four sources, in this order:
//
//  1. the Plugins directory next to the yaam executable
//  2. the YAAM_PLUGIN_PATHS environment variable, a list separated by os.PathListSeparator
//  3. plugin_paths in the YAML config file
//  4. --plugin-path flags
//
// Empty entries are dropped. Handlers found earlier win ties when a caller asks for one handler.
package config
