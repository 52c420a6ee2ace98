package httpapi

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	app "acnemap/internal/application"
	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
	"acnemap/internal/infrastructure/imageio"
	"acnemap/internal/infrastructure/remedy"
	"acnemap/internal/infrastructure/vision"
)

const side = 400

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := analysis.NewRegistry()
	require.NoError(t, err)
	book, err := remedy.Default()
	require.NoError(t, err)

	scans := app.NewScanService(nil, registry, book, imageio.NewCodec(0), zap.NewNop())
	return NewHandler(scans, 1024*1024, zap.NewNop()).Router()
}

func redPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 210, G: 70, B: 60, A: 255})
		}
	}
	data, err := imageio.NewCodec(0).EncodePNG(img)
	require.NoError(t, err)
	return data
}

func landmarksJSON(t *testing.T) string {
	t.Helper()
	set := vision.Ellipse37Landmarks(vision.FaceBox{CX: 200, CY: 190, Size: 220}, nil, side, side)
	raw, err := json.Marshal(set.Points())
	require.NoError(t, err)
	return string(raw)
}

func scanRequest(t *testing.T, url string, photo []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if photo != nil {
		part, err := w.CreateFormFile("image", "face.png")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTopologies(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/topologies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"topologies":["dlib68","ellipse37","facemesh468"]}`, rec.Body.String())
}

func TestRemedies(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/remedies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var book map[string][]entity.Remedy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	require.NotEmpty(t, book["forehead"])
	require.NotEmpty(t, book["universal"])
}

func TestScan_JSON(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, scanRequest(t, "/api/v1/scan", redPhoto(t), map[string]string{
		"landmarks": landmarksJSON(t),
		"topology":  "ellipse37",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.True(t, resp.Data.FaceFound)
	require.Equal(t, 1.0, resp.Data.Scores.Cheeks)
	require.Len(t, resp.Data.Advice.Selected, 4)
	require.Empty(t, resp.Data.Snapshot)
}

func TestScan_Snapshot(t *testing.T) {
	r := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, scanRequest(t, "/api/v1/scan?snapshot=1", redPhoto(t), map[string]string{
		"landmarks": landmarksJSON(t),
		"topology":  "ellipse37",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestScan_Errors(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name   string
		photo  []byte
		fields map[string]string
		status int
	}{
		{"no image", nil, nil, http.StatusBadRequest},
		{"bad image", []byte("nope"), map[string]string{"landmarks": `[{"x":0.1,"y":0.1}]`}, http.StatusBadRequest},
		{"bad landmarks", redPhoto(t), map[string]string{"landmarks": "{"}, http.StatusBadRequest},
		{"unknown topology", redPhoto(t), map[string]string{"landmarks": landmarksJSON(t), "topology": "x"}, http.StatusUnprocessableEntity},
		{"too few landmarks", redPhoto(t), map[string]string{"landmarks": `[{"x":0.1,"y":0.1}]`, "topology": "dlib68"}, http.StatusUnprocessableEntity},
		{"pixel landmarks", redPhoto(t), map[string]string{"landmarks": `[{"x":120,"y":80},{"x":0.5,"y":0.5}]`, "topology": "ellipse37"}, http.StatusUnprocessableEntity},
		{"no source", redPhoto(t), nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, scanRequest(t, "/api/v1/scan", tc.photo, tc.fields))
			require.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestScan_TooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry, err := analysis.NewRegistry()
	require.NoError(t, err)
	scans := app.NewScanService(nil, registry, entity.NewRemedyBook(nil), imageio.NewCodec(0), zap.NewNop())
	r := NewHandler(scans, 16, zap.NewNop()).Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, scanRequest(t, "/api/v1/scan", redPhoto(t), nil))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestScan_BodyOverLimitRejectedBeforeParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry, err := analysis.NewRegistry()
	require.NoError(t, err)
	scans := app.NewScanService(nil, registry, entity.NewRemedyBook(nil), imageio.NewCodec(0), zap.NewNop())
	r := NewHandler(scans, 16, zap.NewNop()).Router()

	huge := bytes.Repeat([]byte{0xff}, multipartOverhead+1024)
	req := scanRequest(t, "/api/v1/scan", huge, nil)
	require.Greater(t, req.ContentLength, int64(16+multipartOverhead))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestScan_ChunkedBodyOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry, err := analysis.NewRegistry()
	require.NoError(t, err)
	scans := app.NewScanService(nil, registry, entity.NewRemedyBook(nil), imageio.NewCodec(0), zap.NewNop())
	r := NewHandler(scans, 16, zap.NewNop()).Router()

	req := scanRequest(t, "/api/v1/scan", bytes.Repeat([]byte{0xff}, multipartOverhead+1024), nil)
	req.ContentLength = -1

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
