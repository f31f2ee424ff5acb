// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package invoke turns the loader declaration of a handler manifest into a callable entry point.
//
// A loader of the form "builtin:<name>" refers to a function compiled into yaam and registered
// with Register. Any other string, or list of strings, is the argv prefix of an external program.
// The file being handled is appended as the last argument.
package invoke
