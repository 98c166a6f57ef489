package tally

import (
	"io/fs"
	"os"
	"slices"
)

// BlobStore is the local persistence port: one named blob holding the whole
// serialized registry. Load reports fs.ErrNotExist when nothing has been
// saved yet.
type BlobStore interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore persists the blob to a single file.
type FileStore struct {
	Path string
}

func (s *FileStore) Load() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// Save overwrites the file as a whole, never partially: the blob is written
// to a sibling temp file first and then renamed over the target.
func (s *FileStore) Save(data []byte) error {
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

// MemStore is an in-memory BlobStore for tests.
type MemStore struct {
	data  []byte
	saved bool
	Saves int // number of Save calls, for write-through assertions
}

func (s *MemStore) Load() ([]byte, error) {
	if !s.saved {
		return nil, fs.ErrNotExist
	}
	return slices.Clone(s.data), nil
}

func (s *MemStore) Save(data []byte) error {
	s.data = slices.Clone(data)
	s.saved = true
	s.Saves++
	return nil
}
