package upload

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

// MaxImageBytes caps cover image uploads. Larger files routinely blow the
// remote host's transformation window, so they are rejected before any
// network call is made.
const MaxImageBytes = 5 * 1024 * 1024

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImageBySniff checks the provided filename (extension) and the first
// bytes (head) against the cover image whitelist. Returns detected mime or a
// validation error.
func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", apierror.Validation("Only JPG, JPEG, PNG, WEBP and GIF images are allowed")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", apierror.Validation("Invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		// Block SVG/XML until a sanitizer is available
		return "", apierror.Validation("SVG/XML files are not supported for security reasons")
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", apierror.Validation("The file type is not supported")
}

// ValidateImageSize rejects oversized files before any upstream call.
func ValidateImageSize(size int64) error {
	if size > MaxImageBytes {
		return apierror.Validation("File size must be less than 5MB")
	}
	return nil
}
