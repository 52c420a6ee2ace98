//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"
	"image"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// Capture заглушка камеры (сборка без тега gocv).
type Capture struct{}

// NewCapture возвращает ошибку, если сборка без тега gocv.
func NewCapture(deviceID, width, height int) (*Capture, error) {
	_, _, _ = deviceID, width, height
	return nil, errNoGoCV
}

func (c *Capture) Read(ctx context.Context) (image.Image, error) {
	_ = ctx
	return nil, errNoGoCV
}

func (c *Capture) Width() int  { return 0 }
func (c *Capture) Height() int { return 0 }

func (c *Capture) Close() error {
	return nil
}
