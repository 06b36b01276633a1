package salarystructureerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)
	ErrNoActiveStructure = apperror.New(
		apperror.CodeNotFound,
		"No active salary structure for this employee on the given date",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee not found",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Item category must be Earnings or Deductions",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Item amount must not be negative",
		http.StatusBadRequest,
	)
	ErrDuplicateItem = apperror.New(
		apperror.CodeInvalidInput,
		"Item names must be unique within a category",
		http.StatusBadRequest,
	)
	ErrPeriodOverlap = apperror.New(
		apperror.CodeConflict,
		"Salary structure period overlaps another version for this employee",
		http.StatusConflict,
	)
	ErrStructureInUse = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure is referenced by salary slips",
		http.StatusBadRequest,
	)
)
