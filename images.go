package inkwell

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 80
)

// ImageDataURL reads an uploaded image into a data URL. Empty input yields "" (no
// file chosen). Images wider than maxImageWidth, and formats browsers may not share
// (webp), are re-encoded as JPEG; others keep their original bytes.
func ImageDataURL(r io.Reader, maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	if len(data) == 0 {
		return "", nil
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrFileRead, maxBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode image: %v", ErrFileRead, err)
	}

	mime := "image/" + format
	keep := format == "png" || format == "jpeg" || format == "gif"
	if !keep || img.Bounds().Dx() > maxImageWidth {
		if data, err = resizeJPEG(img); err != nil {
			return "", fmt.Errorf("%w: %v", ErrFileRead, err)
		}
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// resizeJPEG scales img down to maxImageWidth (never up) and encodes it as JPEG.
func resizeJPEG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
