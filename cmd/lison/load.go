package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/pacer/lison/internal/lison"
)

const stdinName = "stdin"

// loadPaths reads every LISON file named by paths. Directories are searched
// recursively. Without paths, stdin is read under the name "stdin".
func loadPaths(stdin io.Reader, paths []string, ignore []string) (map[string][]byte, error) {
	files := make(map[string][]byte)

	if len(paths) == 0 {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}

		files[stdinName] = content

		return files, nil
	}

	matcher, err := lison.NewIgnoreMatcher(ignore)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open file: %w", err)
			}

			files[path] = content
			continue
		}

		found, err := lison.OpenProjectFiles(path, lison.FileExtensions, matcher)
		if err != nil {
			return nil, err
		}

		maps.Copy(files, found)
	}

	return files, nil
}

func sortedNames[V any](files map[string]V) []string {
	return slices.Sorted(maps.Keys(files))
}
