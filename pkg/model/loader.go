package model

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
)

// Fetcher copies an object from durable storage into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, key string, into string) error
}

// LoaderOptions configure where the artifact is cached and which object backs
// it.
type LoaderOptions struct {
	CacheDir string
	Key      string
	S3       *S3Options
}

func NewDefaultLoaderOptions() *LoaderOptions {
	return &LoaderOptions{
		CacheDir: DefaultCacheDir,
		Key:      DefaultKey,
		S3:       NewDefaultS3Options(),
	}
}

// LoaderOptionsFromEnv applies the environment the stack declaration sets on
// the function (MODEL_CACHE_DIR, MODEL_KEY, MODELS_BUCKET).
func LoaderOptionsFromEnv() *LoaderOptions {
	opts := NewDefaultLoaderOptions()
	if dir := os.Getenv("MODEL_CACHE_DIR"); dir != "" {
		opts.CacheDir = dir
	}
	if key := os.Getenv("MODEL_KEY"); key != "" {
		opts.Key = key
	}
	if bucket := os.Getenv("MODELS_BUCKET"); bucket != "" {
		opts.S3.Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		opts.S3.Region = region
	}
	return opts
}

// Loader acquires the model through the cache file system, falling back to
// durable storage exactly once when the cached artifact does not exist.
type Loader struct {
	CacheDir string
	Key      string
	Fetcher  Fetcher

	once   sync.Once
	cached *Predictor
	err    error
}

// NewLoader builds a loader backed by the S3 model bucket.
func NewLoader(ctx context.Context, opts *LoaderOptions) (*Loader, error) {
	store, err := NewS3Store(ctx, opts.S3)
	if err != nil {
		return nil, err
	}
	return &Loader{CacheDir: opts.CacheDir, Key: opts.Key, Fetcher: store}, nil
}

// cachePath is where the decodable artifact lives. A packed model directory
// extracts into the cache dir, so the artifact sits at the well-known key.
func (l *Loader) cachePath() string {
	if IsArchiveKey(l.Key) {
		return filepath.Join(l.CacheDir, DefaultKey)
	}
	return filepath.Join(l.CacheDir, l.Key)
}

// Load reads the artifact from the cache path, fetching it from durable
// storage first if and only if the cached file does not exist. Any other
// failure, including a corrupt cached artifact, propagates as is: no
// re-fetch, no retry.
func (l *Loader) Load(ctx context.Context) (*Predictor, error) {
	log := logr.FromContextOrDiscard(ctx)

	p, err := l.open()
	if err == nil {
		log.V(1).Info("loaded model from cache", "path", l.cachePath())
		return p, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	log.Info("model not cached, fetching", "key", l.Key, "into", l.cachePath())
	if err := l.fetch(ctx); err != nil {
		return nil, err
	}
	return l.open()
}

// fetch pulls the object to the cache. A packed model directory is downloaded
// next to the cache dir, extracted into it, and the archive removed.
func (l *Loader) fetch(ctx context.Context) error {
	if !IsArchiveKey(l.Key) {
		return l.Fetcher.Fetch(ctx, l.Key, l.cachePath())
	}
	archive := filepath.Join(l.CacheDir, filepath.Base(l.Key))
	if err := l.Fetcher.Fetch(ctx, l.Key, archive); err != nil {
		return err
	}
	defer os.Remove(archive)
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()
	return UnpackDir(ctx, l.CacheDir, f)
}

// Get loads the model once per process and reuses it across invocations. A
// fresh execution environment starts with an empty cache of its own.
func (l *Loader) Get(ctx context.Context) (*Predictor, error) {
	l.once.Do(func() {
		l.cached, l.err = l.Load(ctx)
	})
	return l.cached, l.err
}

func (l *Loader) open() (*Predictor, error) {
	f, err := os.Open(l.cachePath())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
