//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"acnemap/internal/domain/port"
)

// Capture кадры с веб-камеры
type Capture struct {
	mu     sync.Mutex
	webcam *gocv.VideoCapture
	frame  gocv.Mat
	width  int
	height int
}

// NewCapture открывает камеру с запрошенным разрешением
func NewCapture(deviceID, width, height int) (*Capture, error) {
	webcam, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", deviceID, err)
	}

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(height))

	// Камера может не поддерживать запрошенное разрешение
	return &Capture{
		webcam: webcam,
		frame:  gocv.NewMat(),
		width:  int(webcam.Get(gocv.VideoCaptureFrameWidth)),
		height: int(webcam.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

// Read снимает кадр
func (c *Capture) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return nil, errors.New("camera is closed")
	}
	if ok := c.webcam.Read(&c.frame); !ok || c.frame.Empty() {
		return nil, errors.New("failed to read frame")
	}
	return c.frame.ToImage()
}

// Width ширина кадра
func (c *Capture) Width() int {
	return c.width
}

// Height высота кадра
func (c *Capture) Height() int {
	return c.height
}

// Close освобождает камеру. Повторный вызов безопасен.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return nil
	}
	err := c.webcam.Close()
	c.webcam = nil
	c.frame.Close()
	return err
}

var _ port.FrameSource = (*Capture)(nil)
