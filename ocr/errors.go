// Package ocr recognizes scanned page images with the Tesseract engine via
// gosseract and returns hOCR, which keeps word boxes and line structure.
//
// OCR support is compiled in with the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Without the tag every operation returns ErrOCRNotEnabled.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents Tesseract page segmentation modes.
type PageSegMode int

// Page segmentation modes used for full pages.
const (
	PSMAuto         PageSegMode = 3  // Fully automatic (default)
	PSMSingleColumn PageSegMode = 4  // Single column of variable sizes
	PSMSingleBlock  PageSegMode = 6  // Single uniform block of text
	PSMSparseText   PageSegMode = 11 // Find as much text as possible
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "eng"
