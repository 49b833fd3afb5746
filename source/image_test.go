package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func decodedWidth(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestPrepareImage_Upscales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(200, 100)))

	out, err := prepareImage(buf.Bytes(), 1600)
	require.NoError(t, err)

	w, h := decodedWidth(t, out)
	require.Equal(t, 1600, w)
	require.Equal(t, 800, h)
}

func TestPrepareImage_KeepsWideImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(300, 40)))

	out, err := prepareImage(buf.Bytes(), 100)
	require.NoError(t, err)

	w, h := decodedWidth(t, out)
	require.Equal(t, 300, w)
	require.Equal(t, 40, h)
}

func TestPrepareImage_Formats(t *testing.T) {
	var tiffBuf, bmpBuf bytes.Buffer
	require.NoError(t, tiff.Encode(&tiffBuf, testImage(50, 20), nil))
	require.NoError(t, bmp.Encode(&bmpBuf, testImage(50, 20)))

	for name, data := range map[string][]byte{"tiff": tiffBuf.Bytes(), "bmp": bmpBuf.Bytes()} {
		out, err := prepareImage(data, 0)
		require.NoError(t, err, name)
		w, _ := decodedWidth(t, out)
		require.Equal(t, 50, w, name)
	}
}

func TestPrepareImage_Invalid(t *testing.T) {
	_, err := prepareImage([]byte("garbage"), 0)
	require.Error(t, err)
}

func writeTestPNG(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(100, 100)))
	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestImageSource_Recognizes(t *testing.T) {
	src := NewImageSource(writeTestPNG(t), WithLanguage("deu"))
	var gotLang string
	src.recognize = func(data []byte, config Config) (string, error) {
		gotLang = config.Language
		return sampleHOCR, nil
	}

	doc, err := src.Pages(context.Background())
	require.NoError(t, err)
	require.Equal(t, "deu", gotLang)
	require.Len(t, doc.Pages, 1)
	require.Equal(t, "INTRODUCTION", doc.Pages[0].Spans[0].Text)
}

func TestImageSource_RecognizerError(t *testing.T) {
	boom := errors.New("boom")
	src := NewImageSource(writeTestPNG(t))
	src.recognize = func([]byte, Config) (string, error) { return "", boom }

	_, err := src.Pages(context.Background())
	require.ErrorIs(t, err, boom)
}
