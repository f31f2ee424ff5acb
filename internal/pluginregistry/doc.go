// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pluginregistry discovers handler manifests in a list of search paths,
// validates them and answers "which handlers can process this file" queries.
//
// A Registry is configured with AddSearchPath and then populated once with RegisterPlugins.
// Registration is all or nothing: the first load error or malformed manifest aborts the pass,
// and the registry then refuses every query. Manifests that do not declare the handler
// contract at all are skipped.
//
// Queries return handlers in registration order, which is the order of the search paths and,
// within a search path, the order of file names. Several handlers may claim the same file type.
package pluginregistry
