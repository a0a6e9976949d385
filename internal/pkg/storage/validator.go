package storage

import "errors"

var (
	ErrFileTooLarge       = errors.New("file exceeds maximum size")
	ErrContentTypeBlocked = errors.New("content type not allowed")
)

// Upload size caps by kind, in bytes.
const (
	MaxImageSize = 10 * 1024 * 1024
	MaxFileSize  = 50 * 1024 * 1024
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var fileContentTypes = map[string]bool{
	"application/pdf":           true,
	"application/zip":           true,
	"application/postscript":    true,
	"image/vnd.adobe.photoshop": true,
	"text/plain":                true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// IsImage reports whether a content type is a thumbnailable image.
func IsImage(contentType string) bool {
	return imageContentTypes[contentType]
}

// ValidateUpload checks a declared content type and size before a
// presigned PUT URL is issued. The declared values are also bound into
// the signature, so a client cannot upload something else afterwards.
func ValidateUpload(contentType string, size int64) error {
	if imageContentTypes[contentType] {
		if size > MaxImageSize {
			return ErrFileTooLarge
		}
		return nil
	}
	if fileContentTypes[contentType] {
		if size > MaxFileSize {
			return ErrFileTooLarge
		}
		return nil
	}
	return ErrContentTypeBlocked
}

// ExtensionForMime returns the canonical file extension for a MIME type.
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
