package model

import (
	"errors"

	"github.com/opencontainers/go-digest"
	"github.com/syndtr/goleveldb/leveldb"
)

// SeedIndex remembers the digest last uploaded per object key, so re-seeding
// a deployment skips unchanged files.
type SeedIndex struct {
	db *leveldb.DB
}

func OpenSeedIndex(path string) (*SeedIndex, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &SeedIndex{db: db}, nil
}

func (i *SeedIndex) Get(key string) (digest.Digest, error) {
	val, err := i.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return digest.Digest(val), nil
}

func (i *SeedIndex) Put(key string, dgst digest.Digest) error {
	return i.db.Put([]byte(key), []byte(dgst.String()), nil)
}

func (i *SeedIndex) Close() error {
	return i.db.Close()
}
