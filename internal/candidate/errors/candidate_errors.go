package candidateerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Candidate not found",
		http.StatusNotFound,
	)
	ErrEmailExists = apperror.New(
		apperror.CodeConflict,
		"Candidate email already applied to this job posting",
		http.StatusConflict,
	)
	ErrJobPostingNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Job posting not found",
		http.StatusBadRequest,
	)
	ErrJobPostingNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"Job posting is not open for applications",
		http.StatusBadRequest,
	)
	ErrNoHiringStage = apperror.New(
		apperror.CodeInvalidState,
		"No active hiring stage configured",
		http.StatusBadRequest,
	)
	ErrNotActive = apperror.New(
		apperror.CodeInvalidState,
		"Candidate is no longer active",
		http.StatusBadRequest,
	)
	ErrLastStage = apperror.New(
		apperror.CodeInvalidState,
		"Candidate is already at the last hiring stage",
		http.StatusBadRequest,
	)
	ErrNotLastStage = apperror.New(
		apperror.CodeInvalidState,
		"Candidate can only be hired from the last hiring stage",
		http.StatusBadRequest,
	)
	ErrAttachmentTypeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment type not found",
		http.StatusBadRequest,
	)
	ErrEmptyFile = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment file is empty",
		http.StatusBadRequest,
	)
)
