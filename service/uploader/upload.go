package uploader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"venuebook/util"
)

// Uploader stores uploaded images on the local filesystem under the
// configured base directory. Files land in a per-category subdirectory and
// are served back through the static /uploads route.
type Uploader struct {
	baseDir string
}

// Max upload size: 5MB
const MaxFileSize = 5 << 20

// Upload categories, one subdirectory each
const (
	CategoryVenues               = "venues"
	CategoryReceipts             = "receipts"
	CategoryCommissionReceipts   = "commission-receipts"
	CategorySubscriptionReceipts = "subscription-receipts"
)

// Constructor for Uploader
func NewUploader(baseDir string) *Uploader {
	return &Uploader{baseDir: baseDir}
}

// Save writes the uploaded image to <baseDir>/<category>/ under a unique
// filename and returns the public URL path ("/uploads/..."). Only image
// content types within the size limit are accepted.
func (uploader *Uploader) Save(category, originalName, contentType string, size int64, src io.Reader) (string, error) {
	if size > MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", size, MaxFileSize)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	dir := filepath.Join(uploader.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Unique filename: timestamp plus a random suffix, original extension kept
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), util.RandomString(8), filepath.Ext(originalName))

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// LimitReader guards against a size field smaller than the actual body
	if _, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1)); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/%s/%s", category, filename), nil
}
