package dto

import "net/http"

// Error codes emitted by the HTTP layer itself. Domain error codes pass
// through unchanged; ErrorCodeHTTPStatus decides their status.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,

	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"EMAIL_TAKEN":          http.StatusConflict,
	"CODE_TAKEN":           http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"HAS_DEPENDENTS":       http.StatusConflict,

	"INVALID_STATE_FOR_DELETION": http.StatusConflict,
	"INVALID_TRANSITION":         http.StatusUnprocessableEntity,
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":         http.StatusUnprocessableEntity,
	"SYSTEM_ROLE":                http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code. Unmapped
// codes come from domain validation and render as 422.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
