package model

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

const SeedConcurrency = 3

// Putter uploads one object to durable storage.
type Putter interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
}

// SeededObject records one file considered during seeding.
type SeededObject struct {
	Key     string
	Digest  digest.Digest
	Size    int64
	Skipped bool
}

// Seeder uploads a local model directory into the bucket at deployment time.
// With an index attached, files whose digest already matches the last seed
// are skipped.
type Seeder struct {
	Store Putter
	Index *SeedIndex
}

// Seed walks dir and uploads every regular file under its relative path as
// object key. Uploads run with bounded parallelism; the first failure cancels
// the rest.
func (s *Seeder) Seed(ctx context.Context, dir string) ([]SeededObject, error) {
	log := logr.FromContextOrDiscard(ctx)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	seeded := make([]SeededObject, 0, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(SeedConcurrency)
	for _, file := range files {
		file := file
		eg.Go(func() error {
			key, err := filepath.Rel(dir, file)
			if err != nil {
				return err
			}
			key = filepath.ToSlash(key)

			obj, err := s.seedFile(ctx, key, file)
			if err != nil {
				return err
			}
			if obj.Skipped {
				log.V(1).Info("unchanged, skipping", "key", key, "digest", obj.Digest)
			} else {
				log.Info("uploaded", "key", key, "digest", obj.Digest, "size", obj.Size)
			}
			mu.Lock()
			seeded = append(seeded, obj)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return seeded, nil
}

// SeedArchive packs the model directory into one tgz object and uploads it
// under key. With an index attached, an archive whose digest matches the last
// seed is skipped.
func (s *Seeder) SeedArchive(ctx context.Context, dir string, key string) (SeededObject, error) {
	log := logr.FromContextOrDiscard(ctx)

	tmpdir, err := os.MkdirTemp("", "model-pack")
	if err != nil {
		return SeededObject{}, err
	}
	defer os.RemoveAll(tmpdir)

	file := filepath.Join(tmpdir, filepath.Base(key))
	dgst, err := PackDir(ctx, dir, file)
	if err != nil {
		return SeededObject{}, err
	}
	fi, err := os.Stat(file)
	if err != nil {
		return SeededObject{}, err
	}
	obj := SeededObject{Key: key, Digest: dgst, Size: fi.Size()}

	if s.Index != nil {
		previous, err := s.Index.Get(key)
		if err != nil {
			return SeededObject{}, err
		}
		if previous == dgst {
			obj.Skipped = true
			log.V(1).Info("unchanged, skipping", "key", key, "digest", dgst)
			return obj, nil
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return SeededObject{}, err
	}
	defer f.Close()
	if err := s.Store.Put(ctx, key, f, "application/gzip"); err != nil {
		return SeededObject{}, err
	}
	if s.Index != nil {
		if err := s.Index.Put(key, dgst); err != nil {
			return SeededObject{}, err
		}
	}
	log.Info("uploaded", "key", key, "digest", dgst, "size", obj.Size)
	return obj, nil
}

func (s *Seeder) seedFile(ctx context.Context, key string, file string) (SeededObject, error) {
	f, err := os.Open(file)
	if err != nil {
		return SeededObject{}, err
	}
	defer f.Close()

	dgst, err := digest.FromReader(f)
	if err != nil {
		return SeededObject{}, err
	}
	fi, err := f.Stat()
	if err != nil {
		return SeededObject{}, err
	}
	obj := SeededObject{Key: key, Digest: dgst, Size: fi.Size()}

	if s.Index != nil {
		previous, err := s.Index.Get(key)
		if err != nil {
			return SeededObject{}, err
		}
		if previous == dgst {
			obj.Skipped = true
			return obj, nil
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return SeededObject{}, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.Store.Put(ctx, key, f, contentType); err != nil {
		return SeededObject{}, err
	}
	if s.Index != nil {
		if err := s.Index.Put(key, dgst); err != nil {
			return SeededObject{}, err
		}
	}
	return obj, nil
}
