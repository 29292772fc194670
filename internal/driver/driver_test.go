package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sage/internal/ast"
	"sage/internal/driver"
	"sage/internal/source"
)

func TestRunVirtualEvaluatesProgram(t *testing.T) {
	fs := source.NewFileSet()
	res := driver.RunVirtual(fs, "main.sage",
		[]byte("(def f (lambda (x) (+ x 1))) (f 2)"), 16)
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	last := res.Values[len(res.Values)-1]
	if !last.IsInt() || last.Int() != 3 {
		t.Fatalf("program result = %s", res.Interp.Format(last))
	}
}

func TestRunCollectsEmittedRoots(t *testing.T) {
	fs := source.NewFileSet()
	res := driver.RunVirtual(fs, "main.sage", []byte("(display 7)"), 16)
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	if len(res.Emitted) != 1 || res.Emitted[0].Kind != ast.KindDisplay {
		t.Fatalf("emitted roots: %+v", res.Emitted)
	}
}

func TestBuildArtifactFlattensEachRoot(t *testing.T) {
	fs := source.NewFileSet()
	res := driver.RunVirtual(fs, "main.sage",
		[]byte("(display 1) (display 2)"), 16)
	artifact, err := driver.BuildArtifact(res)
	if err != nil {
		t.Fatalf("BuildArtifact: %v", err)
	}
	if len(artifact.Roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(artifact.Roots))
	}
	// Display wrapping an Int literal: two nodes per root.
	if len(artifact.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(artifact.Nodes))
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	fs := source.NewFileSet()
	res := driver.RunVirtual(fs, "main.sage", []byte("(display 7)"), 16)
	artifact, err := driver.BuildArtifact(res)
	if err != nil {
		t.Fatalf("BuildArtifact: %v", err)
	}

	key := fs.Get(res.FileID).Hash
	if err := cache.Put(key, artifact); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out driver.Artifact
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if len(out.Nodes) != len(artifact.Nodes) || len(out.Roots) != len(artifact.Roots) {
		t.Fatalf("round trip changed shape: %+v vs %+v", out, artifact)
	}

	var miss driver.Artifact
	ok, err = cache.Get([32]byte{1}, &miss)
	if err != nil || ok {
		t.Fatalf("expected a miss, got ok=%v err=%v", ok, err)
	}
}

func TestRunDirIsolatesUnits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sage"), "(+ 1 2)")
	writeFile(t, filepath.Join(dir, "b.sage"), "(def x 1) (+ x 1)")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not sage")

	results, err := driver.RunDir(context.Background(), dir, 16)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Sorted path order.
	if filepath.Base(results[0].Path) != "a.sage" {
		t.Fatalf("results out of order: %s", results[0].Path)
	}
	for _, res := range results {
		if res.Bag.HasErrors() {
			t.Fatalf("%s: %+v", res.Path, res.Bag.Items())
		}
		last := res.Values[len(res.Values)-1]
		if !last.IsInt() {
			t.Fatalf("%s result = %s", res.Path, res.Interp.Format(last))
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
