package tree

import "errors"

var (
	// ErrNotFound reports a root path that does not exist.
	ErrNotFound = errors.New("root directory not found")
	// ErrNotADirectory reports a root path that exists but is not a directory.
	ErrNotADirectory = errors.New("root path is not a directory")
	// ErrPermission reports a directory that could not be listed during traversal.
	ErrPermission = errors.New("directory cannot be listed")
)

const (
	errorRootFormat          = "%w: %s: %w"
	errorNotADirectoryFormat = "%w: %s"
	errorStatRootFormat      = "stat root %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
)
