// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package handler

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownCategory is returned when a category tag is not in the category table.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the functional domain a handler belongs to.
// The set of categories is closed: plugins cannot add new ones.
type Category int

const (
	// CategoryAny is not a category. It is used by queries to mean "do not filter".
	CategoryAny Category = iota
	// CategoryAsset is for handlers that import general assets.
	CategoryAsset
	// CategoryTexture is for handlers that import textures.
	CategoryTexture
)

// categoryTags maps the tags used in plugin manifests to categories.
var categoryTags = map[string]Category{
	"asset":   CategoryAsset,
	"texture": CategoryTexture,
}

// ParseCategory resolves a manifest tag to a Category.
// Tags are matched exactly, "Asset" is not a valid tag.
func ParseCategory(tag string) (Category, bool) {
	c, ok := categoryTags[tag]
	return c, ok
}

// LookupCategory is like ParseCategory but returns an error naming the tag.
func LookupCategory(tag string) (Category, error) {
	c, ok := ParseCategory(tag)
	if !ok {
		return CategoryAny, fmt.Errorf("%w: %q, valid categories are %v", ErrUnknownCategory, tag, CategoryTags())
	}

	return c, nil
}

// CategoryTags returns the known category tags in sorted order.
func CategoryTags() []string {
	tags := make([]string, 0, len(categoryTags))
	for tag := range categoryTags {
		tags = append(tags, tag)
	}

	slices.Sort(tags)

	return tags
}

// String returns the manifest tag of the category.
func (c Category) String() string {
	switch c {
	case CategoryAny:
		return "any"
	case CategoryAsset:
		return "asset"
	case CategoryTexture:
		return "texture"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}
