// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package codeunit loads handler manifests into symbol tables.
//
// A code unit is one manifest file found in a search path. Loading it produces a Unit,
// whose Symbols hold the top level values the manifest declares. The package says nothing
// about which symbols make a valid handler; that is decided by the contract package.
//
// Two manifest formats are supported:
//
//   - HCL, files matching "*.plugin.hcl". Top level attributes are evaluated with a small
//     function table (lower, upper, concat, format, join) and the variable path.module,
//     which is the directory containing the manifest. Blocks are ignored.
//   - YAML, files matching "*.plugin.yaml". The document must be a mapping.
package codeunit
