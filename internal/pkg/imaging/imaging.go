// Package imaging normalizes user uploaded pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register decoder
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

var (
	// ErrUnsupportedFormat is returned for anything other than jpeg, png or webp.
	ErrUnsupportedFormat = errors.New("imaging: unsupported image format")
	// ErrTooLarge is returned when the decoded dimensions exceed the limit.
	ErrTooLarge = errors.New("imaging: image dimensions too large")
)

const (
	// ContentType is the MIME type of every Square output.
	ContentType = "image/jpeg"

	maxPixels   = 40_000_000
	jpegQuality = 85
)

var supported = map[string]struct{}{"jpeg": {}, "png": {}, "webp": {}}

// Square decodes r, center-crops it to a square and scales it to size x size.
// The result is JPEG encoded.
func Square(r io.Reader, size int) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	raw := buf.Bytes()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if _, ok := supported[format]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerSquare(src.Bounds()), draw.Src, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	side := min(w, h)
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	return image.Rect(x0, y0, x0+side, y0+side)
}
