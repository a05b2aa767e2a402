package dto

import "net/http"

// HTTP-level error codes
const (
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when the request body cannot be parsed
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeUnauthorized is used when authentication is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation failures are 400, absent resources 404, duplicate submissions
// 409, and business rule rejections 422.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	"VALIDATION_ERROR":     http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_CODE":         http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_DATE":         http.StatusBadRequest,
	"INVALID_IVA":          http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_TYPE":         http.StatusBadRequest,
	"INVALID_NOTE_TYPE":    http.StatusBadRequest,
	"INVALID_PARTNER":      http.StatusBadRequest,
	"INVALID_PARTNER_NAME": http.StatusBadRequest,
	"INVALID_ARTICLE":      http.StatusBadRequest,
	"INVALID_FAMILY":       http.StatusBadRequest,
	"INVALID_TARIFF":       http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_REFERENCE":  http.StatusConflict,
	"DUPLICATE_ARTICLE":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
