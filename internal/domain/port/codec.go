package port

import "image"

// ImageCodec декодирует входящие фото и кодирует снимки с тепловой картой
type ImageCodec interface {
	Decode(data []byte) (image.Image, error)
	EncodePNG(img image.Image) ([]byte, error)
}
