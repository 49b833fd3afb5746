package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/ocr"
)

// ImageSource recognizes a scanned page image with Tesseract. It needs a
// binary built with -tags ocr; otherwise Pages returns ocr.ErrOCRNotEnabled.
type ImageSource struct {
	path      string
	config    Config
	recognize func(png []byte, config Config) (string, error)
}

// NewImageSource creates a source for the image file at path
func NewImageSource(path string, opts ...Option) *ImageSource {
	return &ImageSource{
		path:      path,
		config:    newConfig(opts),
		recognize: recognizeHOCR,
	}
}

// Pages implements SpanSource. The image becomes page 0.
func (s *ImageSource) Pages(ctx context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	prepared, err := prepareImage(data, s.config.MinOCRWidth)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hocr, err := s.recognize(prepared, s.config)
	if err != nil {
		return nil, fmt.Errorf("recognizing %s: %w", s.path, err)
	}
	return parseHOCR(ctx, bytes.NewReader([]byte(hocr)), s.config)
}

// prepareImage decodes any supported image and re-encodes it as PNG,
// upscaling it first when it is narrower than minWidth
func prepareImage(data []byte, minWidth int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img := src
	b := src.Bounds()
	if minWidth > 0 && b.Dx() > 0 && b.Dx() < minWidth {
		scale := float64(minWidth) / float64(b.Dx())
		dst := image.NewRGBA(image.Rect(0, 0, minWidth, int(float64(b.Dy())*scale+0.5)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

func recognizeHOCR(data []byte, config Config) (string, error) {
	client, err := ocr.New()
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.SetLanguage(config.Language); err != nil {
		return "", fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetPageSegMode(ocr.PSMAuto); err != nil {
		return "", fmt.Errorf("setting page segmentation: %w", err)
	}
	return client.RecognizeHOCR(data)
}
