package attachmenterrors

import (
	"employee-directory/internal/shared/apperror"
	"net/http"
)

var (
	ErrUnknownCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown attachment category",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment file is required",
		http.StatusBadRequest,
	)
	ErrUnsupportedType = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported attachment file type",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment exceeds the maximum allowed size",
		http.StatusBadRequest,
	)
	ErrTooManyFiles = apperror.New(
		apperror.CodeInvalidInput,
		"Too many attachments in one request",
		http.StatusBadRequest,
	)
	ErrStorageFailure = apperror.New(
		apperror.CodeInternalError,
		"Failed to store attachment",
		http.StatusInternalServerError,
	)
)
