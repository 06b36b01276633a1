package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrCrossYearRange = apperror.New(
		apperror.CodeInvalidInput,
		"leave must start and end in the same year",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee not found",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"leave type not found",
		http.StatusBadRequest,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not active",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave application not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required",
		http.StatusBadRequest,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"you cannot approve your own leave",
		http.StatusForbidden,
	)
	ErrNotStepApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not the approver for the current step",
		http.StatusForbidden,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"no leave balance allocated for this leave type and year",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrLeaveBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrLeaveBalanceExists = apperror.New(
		apperror.CodeConflict,
		"leave balance already exists for this employee, leave type and year",
		http.StatusConflict,
	)
	ErrAllocatedBelowUsed = apperror.New(
		apperror.CodeInvalidInput,
		"allocated days cannot be lower than used days",
		http.StatusBadRequest,
	)
	ErrBalanceInUse = apperror.New(
		apperror.CodeInvalidState,
		"leave balance has used days and cannot be deleted",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
)
