package designationerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)
	ErrDesignationCodeExists = apperror.New(
		apperror.CodeConflict,
		"Designation code already exists",
		http.StatusConflict,
	)
	ErrDesignationNameExists = apperror.New(
		apperror.CodeConflict,
		"Designation name already exists",
		http.StatusConflict,
	)
	ErrDesignationInUse = apperror.New(
		apperror.CodeInvalidState,
		"Designation is still used by employees",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not exist",
		http.StatusBadRequest,
	)
)
