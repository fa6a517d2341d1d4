// Package tree renders a directory hierarchy as box-drawing lines.
//
// A rendering starts with the root header and a decorative pipe:
//
//	project/
//	│
//	├── cmd/
//	│   └── main.go
//	└── go.mod
//
// Directories are listed before files and each group is ordered by name.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

const (
	// Pipe connects the root header to the first level of the listing.
	Pipe = "│"
	// Elbow marks the last entry of a listing.
	Elbow = "└──"
	// Tee marks every entry that has a following sibling.
	Tee = "├──"
	// PipePrefix extends the prefix below an entry that has following siblings.
	PipePrefix = "│   "
	// SpacePrefix extends the prefix below the last entry of a listing.
	SpacePrefix = "    "
	// DirectorySuffix is appended to directory names.
	DirectorySuffix = "/"
)

// Options configures a Generator.
type Options struct {
	// DirectoriesOnly drops every non-directory entry from the rendering.
	DirectoriesOnly bool
	Logger          *zap.Logger
	// ReadDir lists a directory. Defaults to os.ReadDir.
	ReadDir func(name string) ([]fs.DirEntry, error)
}

// Generator builds tree diagrams. It keeps no state between calls to Build,
// so one Generator may render several roots, including concurrently.
type Generator struct {
	directoriesOnly bool
	logger          *zap.Logger
	readDir         func(name string) ([]fs.DirEntry, error)
}

// entry is a single listing item, enumerated per visit and never cached.
type entry struct {
	name        string
	isDirectory bool
}

// NewGenerator constructs a Generator from options.
func NewGenerator(options Options) *Generator {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	readDir := options.ReadDir
	if readDir == nil {
		readDir = os.ReadDir
	}
	return &Generator{
		directoriesOnly: options.DirectoriesOnly,
		logger:          logger,
		readDir:         readDir,
	}
}

// Build renders the tree rooted at rootPath with a default Generator.
func Build(rootPath string, directoriesOnly bool) ([]string, error) {
	return NewGenerator(Options{DirectoriesOnly: directoriesOnly}).Build(rootPath)
}

// Build walks rootPath and returns the rendered lines in display order.
// The result always starts with the root header and the top-level pipe.
// Any directory that cannot be listed aborts the whole build.
func (generator *Generator) Build(rootPath string) ([]string, error) {
	cleanRoot := filepath.Clean(rootPath)
	rootInfo, statError := os.Stat(cleanRoot)
	if statError != nil {
		switch {
		case errors.Is(statError, fs.ErrNotExist):
			return nil, fmt.Errorf(errorRootFormat, ErrNotFound, rootPath, statError)
		case errors.Is(statError, fs.ErrPermission):
			return nil, fmt.Errorf(errorRootFormat, ErrPermission, rootPath, statError)
		default:
			return nil, fmt.Errorf(errorStatRootFormat, rootPath, statError)
		}
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorNotADirectoryFormat, ErrNotADirectory, rootPath)
	}

	lines := []string{headLine(cleanRoot), Pipe}
	return generator.appendBody(lines, cleanRoot, "")
}

// appendBody appends the listing of directoryPath to lines and returns the
// extended slice. Every recursive call receives its own prefix value.
func (generator *Generator) appendBody(lines []string, directoryPath string, prefix string) ([]string, error) {
	entries, listError := generator.listEntries(directoryPath)
	if listError != nil {
		return nil, listError
	}

	lastIndex := len(entries) - 1
	for index, current := range entries {
		isLast := index == lastIndex
		connector := Tee
		if isLast {
			connector = Elbow
		}

		if !current.isDirectory {
			lines = append(lines, prefix+connector+" "+current.name)
			continue
		}

		lines = append(lines, prefix+connector+" "+current.name+DirectorySuffix)
		childPrefix := prefix + PipePrefix
		if isLast {
			childPrefix = prefix + SpacePrefix
		}
		var bodyError error
		lines, bodyError = generator.appendBody(lines, filepath.Join(directoryPath, current.name), childPrefix)
		if bodyError != nil {
			return nil, bodyError
		}
	}
	return lines, nil
}

// listEntries reads directoryPath, applies the directories-only filter and
// orders the result: directories first, then byte-wise by name.
func (generator *Generator) listEntries(directoryPath string) ([]entry, error) {
	directoryEntries, readError := generator.readDir(directoryPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrPermission) {
			return nil, fmt.Errorf(errorRootFormat, ErrPermission, directoryPath, readError)
		}
		return nil, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}

	entries := make([]entry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		isDirectory := resolvesToDirectory(directoryPath, directoryEntry)
		if generator.directoriesOnly && !isDirectory {
			continue
		}
		entries = append(entries, entry{name: directoryEntry.Name(), isDirectory: isDirectory})
	}
	slices.SortStableFunc(entries, compareEntries)

	generator.logger.Debug("listed directory",
		zap.String("path", directoryPath),
		zap.Int("entries", len(entries)),
	)
	return entries, nil
}

// resolvesToDirectory follows symbolic links; a dangling link counts as a file.
func resolvesToDirectory(parentPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(filepath.Join(parentPath, directoryEntry.Name()))
	return statError == nil && targetInfo.IsDir()
}

func compareEntries(left, right entry) int {
	if left.isDirectory != right.isDirectory {
		if left.isDirectory {
			return -1
		}
		return 1
	}
	return strings.Compare(left.name, right.name)
}

func headLine(cleanRoot string) string {
	if strings.HasSuffix(cleanRoot, string(filepath.Separator)) {
		return cleanRoot
	}
	return cleanRoot + DirectorySuffix
}
