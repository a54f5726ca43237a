package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/nfnt/resize"
)

const (
	// MaxRawBytes is the upload ceiling, enforced before any decode.
	MaxRawBytes = 10 * 1024 * 1024
	// MaxWidth is the widest image sent to the inference gateway.
	MaxWidth = 800
	// jpegQuality matches the 0.7 canvas quality factor of the web client.
	jpegQuality = 70
)

var (
	ErrFileTooLarge = errors.New("image exceeds the 10 MiB upload limit")
	ErrInvalidImage = errors.New("image could not be decoded")
)

// Preprocess bounds a raw image for transmission: images above the size
// ceiling are rejected before decoding, images wider than MaxWidth are scaled
// down preserving aspect ratio, and the result is re-encoded as JPEG inside a
// data URI ready for JSON transport.
func Preprocess(raw []byte) (string, error) {
	if len(raw) > MaxRawBytes {
		return "", ErrFileTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > MaxWidth {
		// height = h * MaxWidth / w, rounded
		newH := int(math.Round(float64(h) * float64(MaxWidth) / float64(w)))
		img = resize.Resize(MaxWidth, uint(newH), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:image/jpeg;base64," + b64, nil
}

// PreprocessPayload accepts the wire form of an uploaded image, either a
// data URI or bare base64, and runs Preprocess on the decoded bytes.
func PreprocessPayload(payload string) (string, error) {
	b64 := payload
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return "", ErrInvalidImage
		}
		b64 = payload[idx+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("%w: bad base64 payload", ErrInvalidImage)
	}
	return Preprocess(raw)
}
