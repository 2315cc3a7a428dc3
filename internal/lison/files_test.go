package lison

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pacer/lison/internal/lison/testutil"
)

func TestOpenProjectFiles(t *testing.T) {
	dir := testutil.TempDir(t, map[string]string{
		"a.lison":                    "(1)",
		"sub/b.lsn":                  "(2)",
		"notes.txt":                  "not lison",
		"vendor/c.lison":             "(3)",
		"sub/skip.tmp.lison":         "(4)",
		"deep/1/2/3/4/5/6/too.lison": "(5)",
	})

	ignore, err := NewIgnoreMatcher([]string{"vendor", "*.tmp.lison"})
	if err != nil {
		t.Fatalf("NewIgnoreMatcher returned error: %v", err)
	}

	files, err := OpenProjectFiles(dir, FileExtensions, ignore)
	if err != nil {
		t.Fatalf("OpenProjectFiles returned error: %v", err)
	}

	var got []string
	for name := range files {
		rel, _ := filepath.Rel(dir, name)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)

	want := []string{"a.lison", "sub/b.lsn"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	if string(files[filepath.Join(dir, "a.lison")]) != "(1)" {
		t.Errorf("Unexpected content for a.lison: %q", files[filepath.Join(dir, "a.lison")])
	}
}

func TestOpenProjectFiles_MissingRoot(t *testing.T) {
	if _, err := OpenProjectFiles(filepath.Join(t.TempDir(), "missing"), FileExtensions, nil); err == nil {
		t.Error("Expected an error for a missing root directory")
	}
}

func TestNewIgnoreMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewIgnoreMatcher([]string{"[unclosed"}); err == nil {
		t.Error("Expected an error for an invalid glob")
	}
}

func TestHasFileExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "a.lison", want: true},
		{name: "dir/a.lsn", want: true},
		{name: "a.lison.bak", want: false},
		{name: "lison", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasFileExtension(tt.name, FileExtensions); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
