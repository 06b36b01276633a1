package approvalworkflowerrors

import (
	"go-hrms/internal/shared/apperror"
	"net/http"
)

var (
	ErrWorkflowNotFound = apperror.New(
		apperror.CodeNotFound,
		"Approval workflow not found",
		http.StatusNotFound,
	)
	ErrActiveWorkflowExists = apperror.New(
		apperror.CodeConflict,
		"Another active workflow already exists for this module",
		http.StatusConflict,
	)
	ErrInvalidModule = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported workflow module",
		http.StatusBadRequest,
	)
	ErrStepsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Workflow needs at least one step",
		http.StatusBadRequest,
	)
	ErrDuplicateStepOrder = apperror.New(
		apperror.CodeInvalidInput,
		"Step orders must be unique and start at 1 without gaps",
		http.StatusBadRequest,
	)
	ErrInvalidApprover = apperror.New(
		apperror.CodeInvalidInput,
		"Step approver must be a role or an employee, not both",
		http.StatusBadRequest,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Step approver not found",
		http.StatusBadRequest,
	)
	ErrWorkflowInUse = apperror.New(
		apperror.CodeInvalidState,
		"Workflow still has pending requests",
		http.StatusBadRequest,
	)
)
