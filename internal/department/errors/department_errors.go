package departmenterrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentCodeExists = apperror.New(
		apperror.CodeConflict,
		"Department code already exists",
		http.StatusConflict,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"Department name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeInvalidState,
		"Department still has employees assigned",
		http.StatusBadRequest,
	)
)
