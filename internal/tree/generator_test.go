package tree_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/rptree/internal/tree"
)

const rootDirectoryName = "root"

// createLayout creates directories (trailing slash) and files below base.
func createLayout(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, relativePath := range paths {
		fullPath := filepath.Join(base, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			require.NoError(t, os.MkdirAll(fullPath, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte("content"), 0o600))
	}
}

func TestBuildRendersScenarios(t *testing.T) {
	testCases := []struct {
		name            string
		layout          []string
		directoriesOnly bool
		expected        []string
	}{
		{
			name:     "empty root",
			layout:   []string{"root/"},
			expected: []string{"root/", "│"},
		},
		{
			name:     "directory before file",
			layout:   []string{"root/a.txt", "root/sub/"},
			expected: []string{"root/", "│", "├── sub/", "└── a.txt"},
		},
		{
			name:            "directories only keeps sole directory",
			layout:          []string{"root/sub/x.txt"},
			directoriesOnly: true,
			expected:        []string{"root/", "│", "└── sub/"},
		},
		{
			name: "nested prefixes",
			layout: []string{
				"root/alpha/one.txt",
				"root/alpha/inner/deep.txt",
				"root/beta/",
				"root/z.txt",
			},
			expected: []string{
				"root/",
				"│",
				"├── alpha/",
				"│   ├── inner/",
				"│   │   └── deep.txt",
				"│   └── one.txt",
				"├── beta/",
				"└── z.txt",
			},
		},
		{
			name: "directory followed by a file keeps the bar",
			layout: []string{
				"root/a.txt",
				"root/last/child/leaf.txt",
				"root/last/other.txt",
			},
			expected: []string{
				"root/",
				"│",
				"├── last/",
				"│   ├── child/",
				"│   │   └── leaf.txt",
				"│   └── other.txt",
				"└── a.txt",
			},
		},
		{
			name:     "sole directory children use blank padding",
			layout:   []string{"root/only/inner/", "root/only/file.txt"},
			expected: []string{"root/", "│", "└── only/", "    ├── inner/", "    └── file.txt"},
		},
		{
			name:     "case sensitive byte ordering",
			layout:   []string{"root/b.txt", "root/B.txt", "root/a.txt", "root/A/"},
			expected: []string{"root/", "│", "├── A/", "├── B.txt", "├── a.txt", "└── b.txt"},
		},
		{
			name:            "directories only with empty directories",
			layout:          []string{"root/a/", "root/b/c/", "root/file.txt"},
			directoriesOnly: true,
			expected:        []string{"root/", "│", "├── a/", "└── b/", "    └── c/"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			base := t.TempDir()
			createLayout(t, base, testCase.layout...)
			t.Chdir(base)

			lines, err := tree.Build(rootDirectoryName, testCase.directoriesOnly)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, lines)
		})
	}
}

func TestBuildNormalizesRootHeader(t *testing.T) {
	base := t.TempDir()
	createLayout(t, base, "root/")
	t.Chdir(base)

	lines, err := tree.Build("./root/", false)
	require.NoError(t, err)
	require.Equal(t, []string{"root/", "│"}, lines)
}

func TestBuildLineCountMatchesEntries(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	layout := []string{
		"a/b/c/d.txt",
		"a/b/e.txt",
		"a/f/",
		"g.txt",
		"h/i.txt",
		"h/j/k/",
		"h/j/l.txt",
	}
	createLayout(t, base, layout...)

	entryCount := 0
	walkError := filepath.WalkDir(base, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != base {
			entryCount++
		}
		return nil
	})
	require.NoError(t, walkError)

	lines, err := tree.Build(base, false)
	require.NoError(t, err)
	require.Len(t, lines, 2+entryCount)
	require.Equal(t, base+"/", lines[0])
	require.Equal(t, tree.Pipe, lines[1])
}

func TestBuildDirectoriesOnlyExcludesFiles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	createLayout(t, base, "x/y.txt", "x/z/w.txt", "top.txt", "v/")

	lines, err := tree.Build(base, true)
	require.NoError(t, err)
	require.Len(t, lines, 2+3)
	for _, line := range lines[2:] {
		require.True(t, strings.HasSuffix(line, tree.DirectorySuffix), "unexpected file line %q", line)
	}
}

func TestBuildUsesOneElbowPerSiblingGroup(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	createLayout(t, base, "d1/f1.txt", "d1/f2.txt", "d1/f3.txt", "d2/", "f4.txt", "f5.txt")

	lines, err := tree.Build(base, false)
	require.NoError(t, err)

	elbowsByPrefix := map[string]int{}
	teesByPrefix := map[string]int{}
	for _, line := range lines[2:] {
		switch {
		case strings.Contains(line, tree.Elbow):
			elbowsByPrefix[strings.SplitN(line, tree.Elbow, 2)[0]]++
		case strings.Contains(line, tree.Tee):
			teesByPrefix[strings.SplitN(line, tree.Tee, 2)[0]]++
		}
	}
	require.Equal(t, map[string]int{"": 1, tree.PipePrefix: 1}, elbowsByPrefix)
	require.Equal(t, map[string]int{"": 3, tree.PipePrefix: 2}, teesByPrefix)
}

func TestBuildFollowsDirectorySymlinks(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := t.TempDir()
	createLayout(t, target, "inside.txt")
	createLayout(t, base, "plain.txt")
	require.NoError(t, os.Symlink(target, filepath.Join(base, "link")))
	require.NoError(t, os.Symlink(filepath.Join(base, "missing"), filepath.Join(base, "dangling")))

	lines, err := tree.Build(base, false)
	require.NoError(t, err)
	require.Equal(t, []string{
		base + "/",
		"│",
		"├── link/",
		"│   └── inside.txt",
		"├── dangling",
		"└── plain.txt",
	}, lines)
}

func TestBuildReportsRootErrors(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	createLayout(t, base, "file.txt")

	_, missingError := tree.Build(filepath.Join(base, "missing"), false)
	require.ErrorIs(t, missingError, tree.ErrNotFound)
	require.ErrorIs(t, missingError, os.ErrNotExist)

	_, fileError := tree.Build(filepath.Join(base, "file.txt"), false)
	require.ErrorIs(t, fileError, tree.ErrNotADirectory)
}

func TestBuildAbortsOnUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	base := t.TempDir()
	createLayout(t, base, "open/a.txt", "locked/b.txt")
	lockedPath := filepath.Join(base, "locked")
	require.NoError(t, os.Chmod(lockedPath, 0o000))
	t.Cleanup(func() { _ = os.Chmod(lockedPath, 0o755) })

	lines, err := tree.Build(base, false)
	require.ErrorIs(t, err, tree.ErrPermission)
	require.Contains(t, err.Error(), lockedPath)
	require.Nil(t, lines)
}

// failingReader lists directories with os.ReadDir except failedPath, which returns failure.
func failingReader(failedPath string, failure error) func(string) ([]fs.DirEntry, error) {
	return func(name string) ([]fs.DirEntry, error) {
		if name == failedPath {
			return nil, &fs.PathError{Op: "open", Path: name, Err: failure}
		}
		return os.ReadDir(name)
	}
}

func TestBuildAbortsWhenAnyListingFails(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	createLayout(t, base, "first/a.txt", "second/nested/b.txt", "third/c.txt")
	failedPath := filepath.Join(base, "second", "nested")
	otherFailure := errors.New("input/output error")

	testCases := []struct {
		name            string
		failure         error
		expectedErrors  []error
		directoriesOnly bool
	}{
		{name: "permission denied", failure: fs.ErrPermission, expectedErrors: []error{tree.ErrPermission, fs.ErrPermission}},
		{name: "permission denied directories only", failure: fs.ErrPermission, expectedErrors: []error{tree.ErrPermission}, directoriesOnly: true},
		{name: "other listing failure", failure: otherFailure, expectedErrors: []error{otherFailure}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			generator := tree.NewGenerator(tree.Options{
				DirectoriesOnly: testCase.directoriesOnly,
				ReadDir:         failingReader(failedPath, testCase.failure),
			})

			lines, err := generator.Build(base)
			require.Nil(t, lines)
			require.Contains(t, err.Error(), failedPath)
			for _, expected := range testCase.expectedErrors {
				require.ErrorIs(t, err, expected)
			}
			if !errors.Is(testCase.failure, fs.ErrPermission) {
				require.NotErrorIs(t, err, tree.ErrPermission)
			}
		})
	}
}

func TestBuildUsesInjectedReader(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	createLayout(t, base, "kept/", "hidden.txt")
	generator := tree.NewGenerator(tree.Options{
		ReadDir: func(name string) ([]fs.DirEntry, error) {
			entries, err := os.ReadDir(name)
			if err != nil {
				return nil, err
			}
			visible := entries[:0]
			for _, entry := range entries {
				if entry.Name() != "hidden.txt" {
					visible = append(visible, entry)
				}
			}
			return visible, nil
		},
	})

	lines, err := generator.Build(base)
	require.NoError(t, err)
	require.Equal(t, []string{base + "/", "│", "└── kept/"}, lines)
}
