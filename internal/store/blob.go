package store

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anbuchelva/cams/internal/domain"
)

// BlobStore keeps uploaded documents in a flat directory, keyed by a
// generated unique filename that is persisted on the project record.
type BlobStore struct {
	dir string
}

// NewBlobStore creates the uploads directory if needed.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &BlobStore{dir: dir}, nil
}

// Save writes the blob under a generated name of the form
// <field>-<millis>-<rand><ext> and returns that name.
func (b *BlobStore) Save(field, originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s-%d-%d%s",
		field, time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(originalName))

	f, err := os.Create(filepath.Join(b.dir, name))
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}
	return name, nil
}

// Remove deletes a stored blob. Used to clean up uploads from submissions
// that failed validation.
func (b *BlobStore) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(b.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Open returns the stored blob for reading. Names containing path separators
// are rejected so a crafted record cannot escape the uploads directory.
func (b *BlobStore) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(b.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open blob %s: %w", name, err)
	}
	return f, nil
}
