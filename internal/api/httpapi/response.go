package httpapi

import "acnemap/internal/domain/entity"

// ScanResponse ответ на скан
type ScanResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    *entity.ScanResult `json:"data,omitempty"`
}

// ErrorResponse ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
