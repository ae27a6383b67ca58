package uploader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	service := NewUploader(t.TempDir())

	content := []byte("fake image bytes")
	url, err := service.Save(CategoryVenues, "hall.png", "image/png", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/venues/"))
	require.True(t, strings.HasSuffix(url, ".png"))
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	service := NewUploader(dir)

	content := []byte("fake image bytes")
	url, err := service.Save(CategoryReceipts, "receipt.jpg", "image/jpeg", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	// The stored file must hold exactly the uploaded bytes
	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	require.Equal(t, content, data)
}

func TestSaveRejectsNonImage(t *testing.T) {
	service := NewUploader(t.TempDir())

	_, err := service.Save(CategoryReceipts, "notes.txt", "text/plain", 4, bytes.NewReader([]byte("text")))
	require.Error(t, err)
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	service := NewUploader(t.TempDir())

	_, err := service.Save(CategoryVenues, "huge.png", "image/png", MaxFileSize+1, bytes.NewReader(nil))
	require.Error(t, err)
}
