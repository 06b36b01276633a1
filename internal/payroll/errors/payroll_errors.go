package payrollerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year 2000-2100",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll processing not found",
		http.StatusNotFound,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll processing already exists for this month",
		http.StatusConflict,
	)
	ErrPayrollAlreadyPaid = apperror.New(
		apperror.CodeConflict,
		"payroll for this month is already paid",
		http.StatusConflict,
	)
	ErrRunHasPaidSlips = apperror.New(
		apperror.CodeConflict,
		"payroll has paid salary slips and cannot be reprocessed",
		http.StatusConflict,
	)
	ErrNoEligibleEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"no eligible employees for this period",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll status transition",
		http.StatusBadRequest,
	)
	ErrDeletePaid = apperror.New(
		apperror.CodeInvalidState,
		"paid payroll cannot be deleted",
		http.StatusBadRequest,
	)
	ErrSlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary slip not found",
		http.StatusNotFound,
	)
	ErrSlipPaid = apperror.New(
		apperror.CodeInvalidState,
		"paid salary slip cannot be changed",
		http.StatusBadRequest,
	)
	ErrInvalidSlipStatus = apperror.New(
		apperror.CodeInvalidState,
		"slip can only be marked paid after its payroll is processed",
		http.StatusBadRequest,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"payslip is not generated yet",
		http.StatusNotFound,
	)
)
