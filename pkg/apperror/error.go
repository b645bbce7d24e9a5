package apperror

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause so errors.Is/As keep working across layers.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

// Timeout is returned when a bounded operation (store transaction) exceeded its budget.
func Timeout(message string, err error) *AppError {
	return New(http.StatusGatewayTimeout, message, err)
}

// ProviderFailure wraps a failed or unparseable generative-text call.
func ProviderFailure(message string, err error) *AppError {
	return New(http.StatusBadGateway, message, err)
}

func SaveFailed(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

func StoreFailure(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// CodeOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
