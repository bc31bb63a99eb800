package storage_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"

	"hobbyhub/internal/storage"
)

// makeFileHeader builds a multipart file header carrying a PNG of the
// given size, the way an HTTP upload would deliver it.
func makeFileHeader(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("image", filename)
	assert.NoError(t, err)
	assert.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, width, height))))
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	assert.Len(t, files, 1)
	return files[0]
}

func TestImageStore_SaveUploadAndCompress(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewImageStore(dir)
	assert.NoError(t, err)

	fh := makeFileHeader(t, "cover.png", 1200, 600)

	name, err := store.SaveUpload(fh)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "-cover.png"))
	assert.FileExists(t, filepath.Join(dir, name))

	derived, err := store.Compress(name)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(derived, "compressed-"))
	assert.True(t, strings.HasSuffix(derived, ".jpg"))

	// The original upload is deleted once the derivative exists.
	_, statErr := os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(statErr))

	// The derivative is capped at 800 wide, aspect ratio preserved.
	img, err := imaging.Open(filepath.Join(dir, derived))
	assert.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestImageStore_CompressKeepsSmallImages(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewImageStore(dir)
	assert.NoError(t, err)

	fh := makeFileHeader(t, "small.png", 400, 300)
	name, err := store.SaveUpload(fh)
	assert.NoError(t, err)

	derived, err := store.Compress(name)
	assert.NoError(t, err)

	// Uploads narrower than the cap are re-encoded but never upscaled.
	img, err := imaging.Open(filepath.Join(dir, derived))
	assert.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestImageStore_CompressMissingFile(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewImageStore(dir)
	assert.NoError(t, err)

	_, err = store.Compress("does-not-exist.png")
	assert.Error(t, err)
}

func TestImageStore_UniqueUploadNames(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewImageStore(dir)
	assert.NoError(t, err)

	first, err := store.SaveUpload(makeFileHeader(t, "cover.png", 10, 10))
	assert.NoError(t, err)
	second, err := store.SaveUpload(makeFileHeader(t, "cover.png", 10, 10))
	assert.NoError(t, err)

	// Two uploads with the same client filename never collide on disk.
	assert.NotEqual(t, first, second)
}
