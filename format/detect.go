// Package format provides input format detection for sectioner.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// JSON indicates a span dump or MuPDF structured-text JSON.
	JSON
	// HOCR indicates an hOCR (HTML) OCR result.
	HOCR
	// Image indicates a scanned page image (PNG, JPEG, GIF, TIFF, BMP, WebP).
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case JSON:
		return "JSON"
	case HOCR:
		return "hOCR"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case JSON:
		return ".json"
	case HOCR:
		return ".hocr"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".json":
		return JSON
	case ".hocr", ".html", ".htm", ".xhtml":
		return HOCR
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		return Image
	default:
		return Unknown
	}
}

// sniffLen is how much of a file DetectFromReader inspects.
const sniffLen = 8192

// DetectFromMagic checks leading bytes to determine format.
// Returns Unknown if the format cannot be determined from the data alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case isImageMagic(data):
		return Image
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return Unknown
	}
	if trimmed[0] == '{' {
		return JSON
	}
	if detectHOCRMagic(trimmed) {
		return HOCR
	}
	return Unknown
}

// isImageMagic reports whether data starts with a supported image signature.
func isImageMagic(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return true
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return true
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return true
	case bytes.HasPrefix(data, []byte("BM")):
		return true
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return true
	}
	return false
}

// detectHOCRMagic checks if the data looks like an HTML page carrying hOCR
// markup. Plain HTML without OCR classes is not accepted.
func detectHOCRMagic(data []byte) bool {
	upper := strings.ToUpper(string(data))
	isHTML := strings.HasPrefix(upper, "<!DOCTYPE HTML") ||
		strings.HasPrefix(upper, "<HTML") ||
		(strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML"))
	if !isHTML {
		return false
	}
	return strings.Contains(upper, "OCR_PAGE") || strings.Contains(upper, "OCR-SYSTEM")
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
