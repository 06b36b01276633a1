package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ErrorBody struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type ApiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    any             `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Stats   any             `json:"stats,omitempty"`
	Error   *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: defaultMessage(status),
		Data:    data,
		Meta:    meta,
	})
}

func SuccessWithMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithStats is used by list endpoints that also report per-status counters.
func SuccessWithStats(c *gin.Context, status int, data any, meta *PaginationMeta, stats any) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: defaultMessage(status),
		Data:    data,
		Meta:    meta,
		Stats:   stats,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error: &ErrorBody{
			Code:    errorCode,
			Details: details,
		},
	})
}

func defaultMessage(status int) string {
	switch status {
	case http.StatusCreated:
		return "Created successfully"
	case http.StatusOK:
		return "Success"
	default:
		return http.StatusText(status)
	}
}
