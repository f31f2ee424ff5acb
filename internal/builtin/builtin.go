// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package builtin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/matt-FFFFFF/yaam/internal/codeunit"
	"github.com/matt-FFFFFF/yaam/internal/ctxlog"
	"github.com/matt-FFFFFF/yaam/internal/invoke"
)

const (
	// StatName is the name of the stat builtin.
	StatName = "stat"
	// SHA256Name is the name of the sha256 builtin.
	SHA256Name = "sha256"
)

var (
	// ErrNotRegularFile is returned when a builtin is asked to handle a directory or other non regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
)

func init() {
	invoke.Register(StatName, Stat)
	invoke.Register(SHA256Name, SHA256)
}

// Stat logs the name, size and modification time of the file.
func Stat(ctx context.Context, filePath string) error {
	fi, err := codeunit.FsFactory().Stat(filePath)
	if err != nil {
		return errors.Join(ErrReadFile, err)
	}

	if !fi.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	ctxlog.Info(ctx, "file info",
		"file", filePath,
		"size", fi.Size(),
		"modified", fi.ModTime(),
	)

	return nil
}

// SHA256 logs the hex encoded SHA-256 digest of the file.
func SHA256(ctx context.Context, filePath string) error {
	sum, err := Digest(filePath)
	if err != nil {
		return err
	}

	ctxlog.Info(ctx, "file digest", "file", filePath, "sha256", sum)

	return nil
}

// Digest returns the hex encoded SHA-256 digest of the file.
func Digest(filePath string) (string, error) {
	f, err := codeunit.FsFactory().Open(filePath)
	if err != nil {
		return "", errors.Join(ErrReadFile, err)
	}
	defer f.Close() //nolint:errcheck

	fi, err := f.Stat()
	if err != nil {
		return "", errors.Join(ErrReadFile, err)
	}

	if !fi.Mode().IsRegular() {
		return "", ErrNotRegularFile
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Join(ErrReadFile, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
