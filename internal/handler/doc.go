// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package handler defines the registered form of a handler plugin.
//
// A Descriptor pairs a Category with the set of file types the handler accepts and the
// entry point used to process a file. Descriptors are built once, during the registration
// pass, and are never modified afterwards.
package handler
