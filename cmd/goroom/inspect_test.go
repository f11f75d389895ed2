package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const chairSTL = `solid chair
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid chair
`

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspectIgnoresWindowSettings(t *testing.T) {
	t.Setenv("GOROOM_WIDTH", "0")
	t.Setenv("GOROOM_FPS", "-5")

	path := filepath.Join(t.TempDir(), "Chair.stl")
	if err := os.WriteFile(path, []byte(chairSTL), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "Interactive objects (1):") {
		t.Errorf("expected the chair to be listed as interactive, got:\n%s", out)
	}
	if !strings.Contains(out, "shadows=true") {
		t.Errorf("expected shadow flags in the node tree, got:\n%s", out)
	}
	if !strings.Contains(out, "Chair        spin") {
		t.Errorf("expected the chair to spin, got:\n%s", out)
	}
}

func TestInspectNeedsAsset(t *testing.T) {
	if _, err := runRoot(t, "inspect", "--asset="); err == nil || !strings.Contains(err.Error(), "asset path is empty") {
		t.Errorf("expected missing asset error, got %v", err)
	}
}
