package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	app "acnemap/internal/application"
	"acnemap/internal/domain/entity"
)

// multipartOverhead запас на заголовки частей и текстовые поля формы
const multipartOverhead = 1 << 20

const msgNoFace = "Лицо не найдено. Сделайте фото анфас при ровном освещении."

type Handler struct {
	scans         *app.ScanService
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(scans *app.ScanService, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{
		scans:         scans,
		maxUploadSize: maxUploadSize,
		log:           log,
	}
}

// Router собирает gin-движок со всеми маршрутами
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(Logger(h.log))
	r.Use(CORS())

	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/remedies", h.Remedies)
		api.GET("/topologies", h.Topologies)
		api.POST("/scan", h.Scan)
	}
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Remedies отдаёт книгу советов целиком
func (h *Handler) Remedies(c *gin.Context) {
	c.JSON(http.StatusOK, h.scans.Remedies().Entries())
}

func (h *Handler) Topologies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topologies": h.scans.Topologies()})
}

// Scan принимает фото лица (поле image) и, по желанию, клиентские ориентиры.
// С ?snapshot=1 в ответ уходит PNG с тепловой картой.
func (h *Handler) Scan(c *gin.Context) {
	if h.maxUploadSize > 0 {
		limit := h.maxUploadSize + multipartOverhead
		if c.Request.ContentLength > limit {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	file, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Загрузите фото в поле image",
			Error:   err.Error(),
		})
		return
	}

	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		h.tooLarge(c)
		return
	}

	data, err := readUpload(file)
	if err != nil {
		h.log.Error("failed to read upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Не удалось прочитать файл",
			Error:   err.Error(),
		})
		return
	}

	opts := app.ScanOptions{
		Topology: c.PostForm("topology"),
		Snapshot: c.Query("snapshot") == "1",
	}
	if raw := c.PostForm("landmarks"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts.Landmarks); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Поле landmarks должно быть JSON-массивом точек {x,y}",
				Error:   err.Error(),
			})
			return
		}
	}

	result, err := h.scans.ScanImage(c.Request.Context(), data, opts)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			h.log.Error("scan failed", zap.Error(err))
		}
		c.JSON(status, ErrorResponse{
			Message: "Не удалось выполнить скан",
			Error:   err.Error(),
		})
		return
	}

	if !result.FaceFound {
		c.JSON(http.StatusOK, ScanResponse{Success: true, Message: msgNoFace, Data: result})
		return
	}
	if opts.Snapshot {
		c.Data(http.StatusOK, "image/png", result.Snapshot)
		return
	}

	out := *result
	out.Snapshot = nil
	c.JSON(http.StatusOK, ScanResponse{Success: true, Data: &out})
}

func (h *Handler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Message: fmt.Sprintf("Файл больше %d МБ", h.maxUploadSize/(1024*1024)),
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrBadImage):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnknownTopology),
		errors.Is(err, entity.ErrLandmarkCount),
		errors.Is(err, entity.ErrLandmarkRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
