package model

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsArchiveKey(t *testing.T) {
	tests := map[string]bool{
		"model.tgz":    true,
		"model.tar.gz": true,
		"model.json":   false,
		"weights.bin":  false,
	}
	for key, want := range tests {
		if got := IsArchiveKey(key); got != want {
			t.Errorf("IsArchiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestPackDirRoundTrip(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"model.json":        `{"name":"stub","output":1}`,
		"extra/weights.bin": "\x00\x01\x02",
	}
	for name, content := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	archive := filepath.Join(t.TempDir(), "model.tgz")
	dgst, err := PackDir(ctx, src, archive)
	if err != nil {
		t.Fatalf("PackDir() error = %v", err)
	}
	if dgst == "" {
		t.Fatal("PackDir() returned an empty digest")
	}

	// attributes are cleared, so an unchanged directory packs to the same
	// digest
	again, err := PackDir(ctx, src, filepath.Join(t.TempDir(), "again.tgz"))
	if err != nil {
		t.Fatalf("PackDir() error = %v", err)
	}
	if again != dgst {
		t.Errorf("repacking an unchanged directory: digest %s, want %s", again, dgst)
	}

	out := t.TempDir()
	f, err := os.Open(archive)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := UnpackDir(ctx, out, f); err != nil {
		t.Fatalf("UnpackDir() error = %v", err)
	}
	for name, content := range files {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(name)))
		if err != nil {
			t.Fatalf("extracted file %s: %v", name, err)
		}
		if !bytes.Equal(data, []byte(content)) {
			t.Errorf("extracted %s differs from the source", name)
		}
	}
}
