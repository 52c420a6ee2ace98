package app

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
	"acnemap/internal/infrastructure/imageio"
	"acnemap/internal/infrastructure/remedy"
	"acnemap/internal/infrastructure/vision"
)

const frameSide = 400

var (
	redSkin  = color.NRGBA{R: 210, G: 70, B: 60, A: 255}
	calmSkin = color.NRGBA{R: 100, G: 90, B: 80, A: 255}
)

func solidFrame(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frameSide, frameSide))
	for y := 0; y < frameSide; y++ {
		for x := 0; x < frameSide; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func faceLandmarks() *entity.LandmarkSet {
	return vision.Ellipse37Landmarks(vision.FaceBox{CX: 200, CY: 190, Size: 220}, nil, frameSide, frameSide)
}

// fakeSource детектор, который всегда находит одно и то же лицо
type fakeSource struct {
	set   *entity.LandmarkSet
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Detect(ctx context.Context, frame image.Image) (*entity.LandmarkSet, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func (f *fakeSource) Topology() entity.Topology {
	return analysis.Ellipse37()
}

func (f *fakeSource) Close() error {
	return nil
}

// fakeFrames источник кадров для LiveScanner
type fakeFrames struct {
	mu     sync.Mutex
	frame  image.Image
	err    error
	reads  int
	closed bool
}

func (f *fakeFrames) Read(ctx context.Context) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.frame, nil
}

func (f *fakeFrames) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeFrames) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func newTestService(t *testing.T, source *fakeSource) *ScanService {
	t.Helper()

	registry, err := analysis.NewRegistry()
	require.NoError(t, err)
	book, err := remedy.Default()
	require.NoError(t, err)

	svc := NewScanService(nil, registry, book, imageio.NewCodec(0), zap.NewNop())
	// nil *fakeSource в интерфейсе не равен nil
	if source != nil {
		svc.source = source
	}
	return svc
}

func encodeFrame(t *testing.T, img image.Image) []byte {
	t.Helper()
	data, err := imageio.NewCodec(0).EncodePNG(img)
	require.NoError(t, err)
	return data
}
