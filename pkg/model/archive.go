package model

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v4"
	"github.com/opencontainers/go-digest"
)

var tgz = archiver.CompressedArchive{
	Archival:    archiver.Tar{},
	Compression: archiver.Gz{},
}

// IsArchiveKey reports whether the object key names a packed model directory
// rather than a bare artifact.
func IsArchiveKey(key string) bool {
	return strings.HasSuffix(key, ".tgz") || strings.HasSuffix(key, ".tar.gz")
}

// PackDir archives dir into a single tgz file and returns the digest of the
// archive bytes. Attributes are cleared, so packing an unchanged directory
// yields the same digest.
func PackDir(ctx context.Context, dir string, intofile string) (digest.Digest, error) {
	files, err := archiver.FilesFromDisk(
		&archiver.FromDiskOptions{ClearAttributes: true},
		map[string]string{dir + string(os.PathSeparator): ""},
	)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(intofile), DefaultDirMode); err != nil {
		return "", err
	}
	f, err := os.Create(intofile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d := digest.Canonical.Digester()
	if err := tgz.Archive(ctx, io.MultiWriter(f, d.Hash()), files); err != nil {
		return "", err
	}
	return d.Digest(), nil
}

// UnpackDir extracts a tgz archive into intodir.
func UnpackDir(ctx context.Context, intodir string, r io.Reader) error {
	return tgz.Extract(ctx, r, nil, func(ctx context.Context, f archiver.File) error {
		nameinlocal := filepath.Join(intodir, f.NameInArchive)
		if f.IsDir() {
			return os.MkdirAll(nameinlocal, f.Mode())
		}
		srcfile, err := f.Open()
		if err != nil {
			return err
		}
		defer srcfile.Close()

		intofile, err := os.OpenFile(nameinlocal, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}
		defer intofile.Close()

		_, err = io.Copy(intofile, srcfile)
		return err
	})
}
