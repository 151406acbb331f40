// Package file provides a directory-backed config.Backend.
//
// Each document name maps to a file in the directory, trying the extensions
// .yaml, .yml and .json in order. Files are read on every Fetch; caching is the
// job of config.Store, which fetches a document at most once.
//
// Usage:
//
//	backend := file.NewBackend("/etc/app")
//	tree, err := backend.Fetch("values") // reads /etc/app/values.yaml
//
// Error Handling:
//   - A missing or empty file is not an error: Fetch returns a nil tree
//   - Unreadable or malformed files return an error naming the file path
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
