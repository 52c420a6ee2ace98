package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"

	"acnemap/internal/domain/entity"
)

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 180, G: 90, B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestCodec_DecodeKeepsSmallImages(t *testing.T) {
	c := NewCodec(1024)
	img, err := c.Decode(encodeJPEG(t, 320, 240))
	require.NoError(t, err)
	require.IsType(t, &image.NRGBA{}, img)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 240, img.Bounds().Dy())
}

func TestCodec_DecodeFitsLargeImages(t *testing.T) {
	c := NewCodec(200)
	img, err := c.Decode(encodeJPEG(t, 800, 400))
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())
}

func TestCodec_DecodeErrors(t *testing.T) {
	c := NewCodec(0)
	_, err := c.Decode(nil)
	require.ErrorIs(t, err, entity.ErrBadImage)

	_, err = c.Decode([]byte("not an image"))
	require.ErrorIs(t, err, entity.ErrBadImage)
}

func TestCodec_EncodePNG(t *testing.T) {
	c := NewCodec(0)
	data, err := c.EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	back, err := c.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 4, back.Bounds().Dx())
}
