// Package fs provides file-based storage for extracted images.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/imgextract"
)

// Ensure ImageStore implements imgextract.ImageStore at compile time.
var _ imgextract.ImageStore = (*ImageStore)(nil)

// ImageStore implements imgextract.ImageStore with atomic update semantics.
// Images are saved to a temporary directory next to the target directory
// and moved into it on Commit. Files already in the target directory that
// were not saved are left alone.
type ImageStore struct {
	dir   string
	saved map[string]bool
}

// NewImageStore creates a new ImageStore writing to dir.
// Files are saved to dir.tmp and moved to dir on Commit.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{
		dir:   filepath.Clean(dir),
		saved: make(map[string]bool),
	}
}

func (s *ImageStore) tempDir() string {
	return s.dir + ".tmp"
}

// Save writes the image's decoded data to the temporary directory under
// the image's name. Returns EINVALID if the name is not a plain file name
// or was already saved.
func (s *ImageStore) Save(ctx context.Context, img *imgextract.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateFileName(img.Name); err != nil {
		return err
	}
	if s.saved[img.Name] {
		return imgextract.Errorf(imgextract.EINVALID, "duplicate file name %q (image %d)", img.Name, img.ID)
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), img.Name), img.Data, 0644); err != nil {
		return err
	}
	s.saved[img.Name] = true
	return nil
}

// Commit moves saved files into the target directory, replacing files with
// the same name, and removes the temporary directory.
func (s *ImageStore) Commit() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	for name := range s.saved {
		if err := os.Rename(filepath.Join(s.tempDir(), name), filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("moving %s: %w", name, err)
		}
	}
	s.saved = make(map[string]bool)

	return os.RemoveAll(s.tempDir())
}

// Abort discards saved files.
func (s *ImageStore) Abort() error {
	s.saved = make(map[string]bool)
	return os.RemoveAll(s.tempDir())
}

// ValidateFileName returns EINVALID unless name is a single path element.
func ValidateFileName(name string) error {
	switch {
	case name == "":
		return imgextract.Errorf(imgextract.EINVALID, "file name required")
	case name == "." || name == "..":
		return imgextract.Errorf(imgextract.EINVALID, "invalid file name %q", name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return imgextract.Errorf(imgextract.EINVALID, "file name %q must not contain path separators", name)
	}
	return nil
}
