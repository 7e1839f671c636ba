// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Artmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - helpers for configuration file path handling
package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - resolve a possibly relative path against a
// directory and clean the result
func EnsureAbsolute(directory string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Clean(filepath.Join(directory, filePath))
}

// EnsureFileExists - true if the path exists and can be stat'd
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
