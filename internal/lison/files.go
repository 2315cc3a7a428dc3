package lison

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/pacer/lison/internal/logging"
)

// MaxProjectFileDepth bounds directory recursion in OpenProjectFiles.
const MaxProjectFileDepth = 5

// FileExtensions are the extensions recognized as LISON sources.
var FileExtensions = []string{"lison", "lsn"}

// IgnoreMatcher reports whether a path must be skipped. Patterns use glob
// syntax with '/' as separator and are tried against the path relative to
// the root and against the base name.
type IgnoreMatcher struct {
	globs []glob.Glob
}

func NewIgnoreMatcher(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}

		m.globs = append(m.globs, g)
	}

	return m, nil
}

func (m *IgnoreMatcher) Match(relPath string) bool {
	if m == nil {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)

	for _, g := range m.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}

	return false
}

// OpenProjectFiles recursively reads files from 'rootDir' having one of
// 'withFileExtensions'. There is a depth limit for the recursion
// (MaxProjectFileDepth). Unreadable files are logged and skipped.
func OpenProjectFiles(rootDir string, withFileExtensions []string, ignore *IgnoreMatcher) (map[string][]byte, error) {
	fileNamesToContent := make(map[string][]byte)

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return relErr
		}

		if rel == "." {
			return nil
		}

		if ignore.Match(rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if strings.Count(filepath.ToSlash(rel), "/") >= MaxProjectFileDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !HasFileExtension(path, withFileExtensions) {
			return nil
		}

		//nolint:gosec // path comes from walking the caller's root
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			logging.Get().Warnf("unable to open file %s: %v", path, readErr)
			return nil
		}

		fileNamesToContent[path] = content

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fileNamesToContent, nil
}

// HasFileExtension reports whether fileName's extension is found within extensions.
func HasFileExtension(fileName string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(fileName, "."+ext) {
			return true
		}
	}

	return false
}
