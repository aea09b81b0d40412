package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is matches any AppError carrying the same code, so wrapped copies made by
// WithError still compare equal to the pre-defined value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	// Detection errors
	ErrUnsupportedFormat = &AppError{
		Code:       "UNSUPPORTED_FORMAT",
		Message:    "Detector format is not supported",
		StatusCode: 400,
	}

	ErrMalformedDetection = &AppError{
		Code:       "MALFORMED_DETECTION",
		Message:    "Detection payload could not be decoded",
		StatusCode: 400,
	}

	ErrEmptyDetection = &AppError{
		Code:       "EMPTY_DETECTION",
		Message:    "Detection result has no landmarks",
		StatusCode: 422,
	}

	ErrIncompleteMesh = &AppError{
		Code:       "INCOMPLETE_MESH",
		Message:    "Detection mesh is missing required landmarks",
		StatusCode: 422,
	}

	ErrNoFaceBox = &AppError{
		Code:       "NO_FACE_BOX",
		Message:    "No face box available",
		StatusCode: 422,
	}

	ErrInvalidFactor = &AppError{
		Code:       "INVALID_FACTOR",
		Message:    "Direction factor must be greater than 1",
		StatusCode: 422,
	}
)
