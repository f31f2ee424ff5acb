// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package handler

import (
	"path/filepath"
	"slices"
	"strings"
)

// TypeSet is a set of file type markers, e.g. ".png".
// Markers are stored lower case so membership is case-insensitive.
type TypeSet map[string]struct{}

// NewTypeSet creates a TypeSet from the given markers.
func NewTypeSet(markers ...string) TypeSet {
	ts := make(TypeSet, len(markers))
	for _, m := range markers {
		ts[strings.ToLower(m)] = struct{}{}
	}

	return ts
}

// Contains reports whether marker is in the set. Matching is exact apart from case.
func (ts TypeSet) Contains(marker string) bool {
	if marker == "" {
		return false
	}

	_, ok := ts[strings.ToLower(marker)]

	return ok
}

// Sorted returns the markers in sorted order.
func (ts TypeSet) Sorted() []string {
	out := make([]string, 0, len(ts))
	for m := range ts {
		out = append(out, m)
	}

	slices.Sort(out)

	return out
}

// FileTypeOf returns the lower case file type marker of path, including the leading dot.
// Only the final extension counts, so "scene.tar.gz" has type ".gz".
// Dot files without a further extension (".bashrc") and names ending in a dot have no type.
func FileTypeOf(path string) string {
	base := filepath.Base(path)

	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}

	return strings.ToLower(base[i:])
}
