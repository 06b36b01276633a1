package shifterrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)
	ErrShiftNameExists = apperror.New(
		apperror.CodeConflict,
		"Shift name already exists",
		http.StatusConflict,
	)
	ErrInvalidClock = apperror.New(
		apperror.CodeInvalidInput,
		"Shift time must use HH:MM format",
		http.StatusBadRequest,
	)
	ErrSameStartEnd = apperror.New(
		apperror.CodeInvalidInput,
		"Shift start and end time must differ",
		http.StatusBadRequest,
	)
	ErrShiftInUse = apperror.New(
		apperror.CodeInvalidState,
		"Shift is still assigned to employees",
		http.StatusBadRequest,
	)
)
