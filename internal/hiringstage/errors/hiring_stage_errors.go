package hiringstageerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrHiringStageNotFound = apperror.New(
		apperror.CodeNotFound,
		"Hiring stage not found",
		http.StatusNotFound,
	)
	ErrHiringStageCodeExists = apperror.New(
		apperror.CodeConflict,
		"Hiring stage code already exists",
		http.StatusConflict,
	)
	ErrHiringStageNameExists = apperror.New(
		apperror.CodeConflict,
		"Hiring stage name already exists",
		http.StatusConflict,
	)
	ErrHiringStageSequenceExists = apperror.New(
		apperror.CodeConflict,
		"Hiring stage sequence already used",
		http.StatusConflict,
	)
	ErrHiringStageInUse = apperror.New(
		apperror.CodeInvalidState,
		"Hiring stage still has candidates",
		http.StatusBadRequest,
	)
)
