package storage

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"recipebox/internal/errors"
)

// MediaStore persists uploaded recipe images.
type MediaStore interface {
	// Save validates that the payload decodes as an image and stores it,
	// returning the generated file name.
	Save(payload []byte) (string, error)
	// Remove deletes a stored file. Removing a missing file is not an error.
	Remove(name string) error
	// Path returns the filesystem path for a stored file name.
	Path(name string) string
}

// DiskStore keeps media files under a single root directory with
// uuid-derived names.
type DiskStore struct {
	root string
}

var _ MediaStore = (*DiskStore)(nil)

// NewDiskStore creates the media root if needed and returns a store.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Save(payload []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", errors.ErrInvalidImage
	}

	name := uuid.New().String() + "." + extensionFor(format)
	if err := os.WriteFile(filepath.Join(s.root, name), payload, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

func (s *DiskStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(name)))
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

func (s *DiskStore) Path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
