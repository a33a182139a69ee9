// Package filex holds filesystem helpers for file-backed storage.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SQLitePath returns the database file named by a SQLite DSN, accepting
// both plain paths and "file:" URIs. In-memory databases have no file and
// yield "".
func SQLitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	path, query, _ := strings.Cut(path, "?")

	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return ""
	}
	return path
}

// EnsureParentDir creates the directory that will hold path, if missing.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
