// Package ioutils provides file system utilities for harmonize.
//
// This package contains functions for:
//   - File copying
//   - Scoped temporary files
//   - Best-effort deletion
//   - Directory creation
//
// It also provides ImageService, used to normalize embedded cover art
// before it is written into output file tags.
package ioutils
