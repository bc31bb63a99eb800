package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// maxWidth is the maximum width of a derivative image. Taller-than-wide
	// uploads keep their aspect ratio.
	maxWidth = 800
	// jpegQuality is the quality setting for derivative JPEG encoding.
	jpegQuality = 70
	// derivativePrefix distinguishes compressed derivatives from originals.
	derivativePrefix = "compressed-"
)

// ImageStore saves uploaded cover images to a local directory and
// produces compressed derivatives from them. Derivatives are re-encoded
// as JPEG regardless of the upload's original format.
type ImageStore struct {
	dir string
}

// NewImageStore creates an ImageStore rooted at dir, creating the
// directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory uploads are stored in.
func (s *ImageStore) Dir() string {
	return s.dir
}

// SaveUpload writes the uploaded file to the store under a unique name
// and returns that name.
func (s *ImageStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(fh.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return name, nil
}

// Compress produces the resized, quality-reduced JPEG derivative of a
// previously saved upload and deletes the original. It returns the
// derivative's file name. The save-compress-delete sequence is not
// atomic: a failure after the derivative is written can leave an
// orphaned original behind.
func (s *ImageStore) Compress(name string) (string, error) {
	srcPath := filepath.Join(s.dir, name)
	img, err := imaging.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to decode upload %s: %w", name, err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	derived := derivativePrefix + base + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.dir, derived), imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to save derivative for %s: %w", name, err)
	}

	if err := os.Remove(srcPath); err != nil {
		return "", fmt.Errorf("failed to remove original upload %s: %w", name, err)
	}
	return derived, nil
}
