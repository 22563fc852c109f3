package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScene writes scene document text to the target path, creating parent
// directories as needed.
func WriteScene(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
