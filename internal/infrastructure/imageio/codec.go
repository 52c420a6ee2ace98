package imageio

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

// Codec декодирует фото с учётом EXIF-ориентации и ужимает крупные кадры.
type Codec struct {
	MaxSide int // 0: без ограничения
}

// NewCodec создаёт кодек с ограничением стороны кадра.
func NewCodec(maxSide int) *Codec {
	return &Codec{MaxSide: maxSide}
}

// Decode превращает байты в *image.NRGBA.
func (c *Codec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", entity.ErrBadImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrBadImage, err)
	}

	// Приводим кадр к стандартному размеру: шаг выборки зависит от стороны.
	b := img.Bounds()
	if c.MaxSide > 0 && (b.Dx() > c.MaxSide || b.Dy() > c.MaxSide) {
		return imaging.Fit(img, c.MaxSide, c.MaxSide, imaging.Lanczos), nil
	}
	return imaging.Clone(img), nil
}

// EncodePNG кодирует снимок в PNG.
func (c *Codec) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

var _ port.ImageCodec = (*Codec)(nil)
