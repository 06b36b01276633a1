package attendance

import (
	"net/http"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// bindOptionalJSON lets clients post an empty body to the clock endpoints.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}

func (h *Handler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Clock in recorded", resp)
}

func (h *Handler) ClockOut(c *gin.Context) {
	var req ClockOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Clock out recorded", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.list(c, ListFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     c.Query("status"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
}

// GetMine lists the caller's own records regardless of any employee_id query.
func (h *Handler) GetMine(c *gin.Context) {
	employeeID := c.GetString(middleware.ContextEmployeeID)
	if employeeID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Account is not linked to an employee", nil)
		return
	}
	h.list(c, ListFilter{
		EmployeeID: employeeID,
		Status:     c.Query("status"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
}

func (h *Handler) list(c *gin.Context, f ListFilter) {
	q := response.ParsePageQuery(c)

	resp, total, err := h.service.GetAll(c.Request.Context(), q, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Attendance created successfully", resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Attendance updated successfully", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Attendance deleted successfully", nil)
}
