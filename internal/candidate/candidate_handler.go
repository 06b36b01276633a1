package candidate

import (
	"io"
	"net/http"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadBytes caps the multipart body; per-type limits are checked by the service.
const maxUploadBytes = 25 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("candidate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("candidate.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("candidate request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Candidate created successfully", resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	q := response.ParsePageQuery(c)
	f := ListFilter{
		JobPostingID: c.Query("job_posting_id"),
		StageID:      c.Query("stage_id"),
		Status:       c.Query("status"),
	}
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

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate updated successfully", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate deleted successfully", nil)
}

func (h *Handler) Advance(c *gin.Context) {
	resp, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate moved to "+resp.StageName, resp)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate rejected", resp)
}

func (h *Handler) Hire(c *gin.Context) {
	resp, err := h.service.Hire(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate hired", resp)
}

func (h *Handler) Withdraw(c *gin.Context) {
	resp, err := h.service.Withdraw(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Candidate withdrawn", resp)
}

// AddAttachment expects multipart fields attachment_type_id and file.
func (h *Handler) AddAttachment(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	typeID := c.PostForm("attachment_type_id")
	if typeID == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "attachment_type_id is required", nil)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "file is required", nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.AddAttachment(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), c.Param("id"), NewAttachment{
		AttachmentTypeID: typeID,
		FileName:         header.Filename,
		ContentType:      header.Header.Get("Content-Type"),
		Content:          content,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Attachment uploaded successfully", resp)
}

func (h *Handler) GetAttachments(c *gin.Context) {
	resp, err := h.service.GetAttachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
