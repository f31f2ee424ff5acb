// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builtin contains the handler functions compiled into yaam.
// Importing the package registers them with the invoke package,
// after which a manifest can use them with loader = "builtin:<name>".
package builtin
