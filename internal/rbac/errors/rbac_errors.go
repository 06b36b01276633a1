package rbacerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)
	ErrRoleNameExists = apperror.New(
		apperror.CodeConflict,
		"Role with the same name already exists",
		http.StatusConflict,
	)
	ErrRoleInUse = apperror.New(
		apperror.CodeInvalidState,
		"Role is still assigned to employees",
		http.StatusBadRequest,
	)
	ErrInvalidPermissions = apperror.New(
		apperror.CodeInvalidInput,
		"One or more permissions do not exist",
		http.StatusBadRequest,
	)
	ErrPolicyLoad = apperror.New(
		apperror.CodeInternalError,
		"Failed to load access policy",
		http.StatusInternalServerError,
	)
)
