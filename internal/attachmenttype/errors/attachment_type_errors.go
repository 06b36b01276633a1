package attachmenttypeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrAttachmentTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attachment type not found",
		http.StatusNotFound,
	)
	ErrAttachmentTypeNameExists = apperror.New(
		apperror.CodeConflict,
		"Attachment type name already exists",
		http.StatusConflict,
	)
	ErrAttachmentTypeInUse = apperror.New(
		apperror.CodeInvalidState,
		"Attachment type is used by candidate attachments",
		http.StatusBadRequest,
	)
	ErrExtensionNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"File extension is not allowed for this attachment type",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the maximum size for this attachment type",
		http.StatusBadRequest,
	)
)
