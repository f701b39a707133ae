package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func initTestFS(t *testing.T) {
	t.Helper()
	Init(
		fstest.MapFS{
			"assets/scene/walk_cycles.anim": {Data: []byte("<document/>")},
			"assets/scene/forest.anim":      {Data: []byte("<document/>")},
		},
		fstest.MapFS{
			"data/scene.yaml": {Data: []byte("window:\n  width: 640\n")},
		},
	)
	t.Cleanup(func() {
		assetsFS, dataFS = nil, nil
		initialized = false
	})
}

// TestIsInitialized tests the initialization state.
func TestIsInitialized(t *testing.T) {
	initialized = false
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	initTestFS(t)
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("assets/scene/forest.anim"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open() error = %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/scene.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile() error = %v, want ErrNotInitialized", err)
	}
	if _, err := Glob("assets/*"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Glob() error = %v, want ErrNotInitialized", err)
	}
	if Exists("assets/scene/forest.anim") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile_RoutesByPrefix(t *testing.T) {
	initTestFS(t)

	data, err := ReadFile("data/scene.yaml")
	if err != nil {
		t.Fatalf("ReadFile(data) error = %v", err)
	}
	if string(data) != "window:\n  width: 640\n" {
		t.Errorf("Unexpected data content: %q", data)
	}

	if _, err := ReadFile("assets/scene/forest.anim"); err != nil {
		t.Errorf("ReadFile(assets) error = %v", err)
	}
	// data files are not visible through the assets prefix
	if _, err := ReadFile("assets/data/scene.yaml"); err == nil {
		t.Error("Expected error for file outside the assets tree")
	}
}

func TestInvalidPrefix(t *testing.T) {
	initTestFS(t)

	_, err := ReadFile("invalid/path/test.txt")
	if err == nil {
		t.Fatal("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: invalid/path/test.txt (must start with 'assets/' or 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestPathNormalization tests that "./" prefixes are stripped.
func TestPathNormalization(t *testing.T) {
	initTestFS(t)

	if !Exists("./assets/scene/forest.anim") {
		t.Error("Path normalization should remove './' prefix")
	}
	if Exists("assets/scene/missing.anim") {
		t.Error("Exists() returned true for a missing file")
	}
}

func TestGlob(t *testing.T) {
	initTestFS(t)

	matches, err := Glob("assets/scene/*.anim")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	want := []string{"assets/scene/forest.anim", "assets/scene/walk_cycles.anim"}
	if len(matches) != len(want) {
		t.Fatalf("Glob() = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("Glob()[%d] = %q, want %q", i, matches[i], want[i])
		}
	}
}
