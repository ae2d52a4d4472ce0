package employeeerrors

import (
	"employee-directory/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)
	// Duplicate email is reported as a validation failure, not 409.
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid profile ID",
		http.StatusBadRequest,
	)
	ErrAttachmentsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Resume and Profile Image are required",
		http.StatusBadRequest,
	)
	ErrSkillsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"At least one skill is required",
		http.StatusBadRequest,
	)
	ErrInvalidDOB = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid dob format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
