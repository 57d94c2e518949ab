package ioutils

import (
	"io"
	"os"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
//
// Returns an error if:
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile("/music/source/track.mp3", "/music/target/track.mp3")
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// TempPath creates a uniquely named empty file in dir and returns its path.
//
// The file serves as a scoped write buffer: callers either rename it onto
// its final destination or remove it with DeleteIfExists on failure.
// Creating it in the destination's own directory keeps the final rename on
// one filesystem, so it is atomic rather than a cross-device copy.
//
// Example:
//
//	tmp, err := TempPath("/music/target/album", ".temp")
//	// tmp = "/music/target/album/.harmonize-1234567.temp"
func TempPath(dir, suffix string) (string, error) {
	f, err := os.CreateTemp(dir, ".harmonize-*"+suffix)
	if err != nil {
		return "", err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// DeleteIfExists removes a file, or a directory and everything below it.
//
// A path that is already missing is not an error: deletions race against
// external modification of the tree and losing that race is fine.
func DeleteIfExists(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/target/Artist/Album")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
