package viewer

import (
	"path/filepath"
	"strings"
)

// Mode tells the browser how to present a stored document.
type Mode string

const (
	ModeImage    Mode = "image"
	ModePDF      Mode = "pdf"
	ModeDownload Mode = "download"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
}

// Detect picks the display mode from the declared MIME type, falling
// back to the file extension when the MIME type is missing or generic.
func Detect(mimeType, fileName string) Mode {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mime, "image/"):
		return ModeImage
	case mime == "application/pdf":
		return ModePDF
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if imageExtensions[ext] {
		return ModeImage
	}
	if ext == ".pdf" {
		return ModePDF
	}
	return ModeDownload
}

// IsInline reports whether the URL carries the file body itself rather
// than pointing at remote storage.
func IsInline(fileURL string) bool {
	return strings.HasPrefix(fileURL, "data:")
}
