package candidateerrors

import (
	"net/http"

	"hris-dashboard/internal/shared/apperror"
)

var (
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Candidate not found",
		http.StatusNotFound,
	)
	ErrCandidateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Candidate with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidAppliedDate = apperror.New(
		apperror.CodeInvalidInput,
		"applied_date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
