package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"VALIDATION_ERROR", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE_REFERENCE", http.StatusConflict},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseConstructors(t *testing.T) {
	resp := NewSuccessResponse("payload")
	assert.True(t, resp.Success)
	assert.Equal(t, "payload", resp.Data)
	assert.Nil(t, resp.Error)

	resp = NewErrorResponseWithRequestID("NOT_FOUND", "gone", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	resp = NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
