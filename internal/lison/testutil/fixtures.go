package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Person is a small multi-line document exercising every value kind and comments.
const Person = `(:persons (
  (* First Person *)
  (:name 'John' (* comments can be anywhere *)
   :age 22
   :height 165.4)
  (* Someone Else *)
  (:name 'Andrew Sharp'
   :age 27
   :height 195
   :workplaces ((:name 'University of Pannonia')))))
`

// TempDir creates a temp directory with files and registers cleanup with t.Cleanup.
// Returns the path to the created directory.
func TempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}
