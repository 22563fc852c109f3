package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mutablerig/internal/config"
	"mutablerig/internal/scene"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_CreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data")
	result := CheckDirectoryAccess("test", path)
	if !result.Passed {
		t.Fatalf("expected missing dir to be created, got: %s", result.Detail)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestCheckDirectoryAccess_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := CheckDirectoryAccess("test", path)
	if result.Passed {
		t.Fatal("expected failure for non-directory")
	}
}

func TestCheckSceneFile_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := scene.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	result := CheckSceneFile("scene", path)
	if !result.Passed {
		t.Fatalf("expected pass for sample scene, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "2 rigs") {
		t.Fatalf("expected rig count in detail, got: %s", result.Detail)
	}
}

func TestCheckSceneFile_Missing(t *testing.T) {
	result := CheckSceneFile("scene", filepath.Join(t.TempDir(), "nope.toml"))
	if result.Passed {
		t.Fatal("expected failure for missing scene")
	}
}

func TestCheckSceneFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte("name = \"broken\"\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := CheckSceneFile("scene", path)
	if result.Passed {
		t.Fatal("expected failure for scene without rigs")
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	scenePath := filepath.Join(base, "scene.toml")
	if err := scene.CreateSample(scenePath); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.ScenePath = scenePath
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestAllPassed(t *testing.T) {
	if !AllPassed(nil) {
		t.Fatal("empty results should pass")
	}
	if AllPassed([]Result{{Passed: true}, {Passed: false}}) {
		t.Fatal("expected failure with one failing result")
	}
}
