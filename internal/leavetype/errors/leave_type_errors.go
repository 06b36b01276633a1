package leavetypeerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeCodeExists = apperror.New(
		apperror.CodeConflict,
		"Leave type code already exists",
		http.StatusConflict,
	)
	ErrLeaveTypeNameExists = apperror.New(
		apperror.CodeConflict,
		"Leave type name already exists",
		http.StatusConflict,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeInvalidState,
		"Leave type is referenced by balances or applications",
		http.StatusBadRequest,
	)
)
