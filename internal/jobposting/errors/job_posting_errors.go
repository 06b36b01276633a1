package jobpostingerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrJobPostingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job posting not found",
		http.StatusNotFound,
	)
	ErrJobPostingCodeExists = apperror.New(
		apperror.CodeConflict,
		"Job posting code already exists",
		http.StatusConflict,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found",
		http.StatusBadRequest,
	)
	ErrDesignationNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Designation not found",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"closing_date must not be before posted_date",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of DRAFT, OPEN, CLOSED",
		http.StatusBadRequest,
	)
	ErrJobPostingInUse = apperror.New(
		apperror.CodeInvalidState,
		"Job posting still has candidates",
		http.StatusBadRequest,
	)
)
