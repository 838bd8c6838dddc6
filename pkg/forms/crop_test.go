package forms

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func TestSetRectProducesCroppedBlob(t *testing.T) {
	s := NewCropSession(testImage(10, 10))
	if s.Blob() != nil {
		t.Fatal("blob must be nil before any crop")
	}

	if err := s.SetRect(image.Rect(2, 3, 4, 5)); err != nil {
		t.Fatalf("crop failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(s.Blob()))
	if err != nil {
		t.Fatalf("blob is not a png: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("cropped size = %dx%d, want 2x2", b.Dx(), b.Dy())
	}
}

func TestSetRectClampsToBounds(t *testing.T) {
	s := NewCropSession(testImage(4, 4))

	if err := s.SetRect(image.Rect(2, 2, 100, 100)); err != nil {
		t.Fatalf("overlapping rect rejected: %v", err)
	}
	decoded, _ := png.Decode(bytes.NewReader(s.Blob()))
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("rect not clamped: %v", decoded.Bounds())
	}

	if err := s.SetRect(image.Rect(50, 50, 60, 60)); err == nil {
		t.Fatal("fully out-of-bounds rect accepted")
	}
}

func TestConfirmFreezesCrop(t *testing.T) {
	s := NewCropSession(testImage(8, 8))
	if err := s.SetRect(image.Rect(0, 0, 4, 4)); err != nil {
		t.Fatalf("crop failed: %v", err)
	}

	blob, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("confirm returned empty blob")
	}
	if s.Editable() {
		t.Fatal("session still editable after confirm")
	}

	if err := s.SetRect(image.Rect(0, 0, 2, 2)); !errors.Is(err, ErrCropConfirmed) {
		t.Fatalf("expected ErrCropConfirmed, got %v", err)
	}
	if s.Blob() == nil {
		t.Fatal("blob discarded with the original")
	}
}

func TestConfirmWithoutExplicitRectUsesFullImage(t *testing.T) {
	s := NewCropSession(testImage(5, 5))
	blob, err := s.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("blob is not a png: %v", err)
	}
	if decoded.Bounds().Dx() != 5 || decoded.Bounds().Dy() != 5 {
		t.Fatalf("default crop is not the full image: %v", decoded.Bounds())
	}
}
