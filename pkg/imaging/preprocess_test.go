package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	"strings"
	"testing"
)

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("expected a jpeg data URI, got %.40q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(uri[len(prefix):])
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a decodable jpeg: %v", err)
	}
	return img
}

func TestWideImageScaledTo800(t *testing.T) {
	uri, err := Preprocess(makeJPEG(t, 3000, 2000))
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	img := decodeDataURI(t, uri)
	b := img.Bounds()
	if b.Dx() != 800 {
		t.Fatalf("expected width 800, got %d", b.Dx())
	}
	// 2000 * 800 / 3000, rounded
	if b.Dy() != 533 {
		t.Fatalf("expected height 533, got %d", b.Dy())
	}
}

func TestNarrowImageKeepsDimensions(t *testing.T) {
	uri, err := Preprocess(makeJPEG(t, 400, 300))
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	img := decodeDataURI(t, uri)
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("expected 400x300 unchanged, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestAspectRatioPreserved(t *testing.T) {
	uri, err := Preprocess(makeJPEG(t, 1601, 901))
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	b := decodeDataURI(t, uri).Bounds()
	if b.Dx() != 800 {
		t.Fatalf("expected width 800, got %d", b.Dx())
	}
	// 901 * 800 / 1601 = 450.28 → 450; allow the documented ±1 rounding
	if b.Dy() < 449 || b.Dy() > 451 {
		t.Fatalf("expected height near 450, got %d", b.Dy())
	}
}

func TestCeilingCheckedBeforeDecode(t *testing.T) {
	// 12 MiB of garbage: if the decoder ran first this would be an
	// invalid-image failure, not a size rejection
	raw := bytes.Repeat([]byte{0xFF}, 12*1024*1024)
	_, err := Preprocess(raw)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestUndecodableInput(t *testing.T) {
	_, err := Preprocess([]byte("not an image at all"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestPayloadAcceptsDataURI(t *testing.T) {
	raw := makeJPEG(t, 200, 100)
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	uri, err := PreprocessPayload(payload)
	if err != nil {
		t.Fatalf("preprocess payload failed: %v", err)
	}
	b := decodeDataURI(t, uri).Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 200x100, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPayloadAcceptsBareBase64(t *testing.T) {
	raw := makeJPEG(t, 64, 64)
	if _, err := PreprocessPayload(base64.StdEncoding.EncodeToString(raw)); err != nil {
		t.Fatalf("bare base64 payload failed: %v", err)
	}
}

func TestPayloadRejectsBadBase64(t *testing.T) {
	_, err := PreprocessPayload("!!!definitely-not-base64!!!")
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}
