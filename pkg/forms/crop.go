package forms

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
)

var ErrCropConfirmed = errors.New("crop already confirmed")

// CropSession holds a full-resolution original in memory while the user
// picks a crop rectangle. The derived blob serves both preview and the
// eventual upload payload; confirming the crop drops the original from
// editable state but keeps the blob.
type CropSession struct {
	original image.Image
	rect     image.Rectangle
	blob     []byte
}

func NewCropSession(original image.Image) *CropSession {
	return &CropSession{
		original: original,
		rect:     original.Bounds(),
	}
}

// SetRect applies a crop rectangle and regenerates the derived blob.
func (s *CropSession) SetRect(rect image.Rectangle) error {
	if s.original == nil {
		return ErrCropConfirmed
	}
	rect = rect.Intersect(s.original.Bounds())
	if rect.Empty() {
		return errors.New("crop rectangle outside image bounds")
	}
	s.rect = rect

	cropped := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(cropped, cropped.Bounds(), s.original, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return err
	}
	s.blob = buf.Bytes()
	return nil
}

// Confirm discards the editable original. Further SetRect calls fail; the
// blob stays available for submit.
func (s *CropSession) Confirm() ([]byte, error) {
	if s.blob == nil {
		if err := s.SetRect(s.rect); err != nil {
			return nil, err
		}
	}
	s.original = nil
	return s.blob, nil
}

// Blob returns the current derived image, nil before any crop.
func (s *CropSession) Blob() []byte {
	return s.blob
}

func (s *CropSession) Editable() bool {
	return s.original != nil
}
