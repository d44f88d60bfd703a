package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"domain error passes through", NewUnauthorized(""), http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewNotFound("Medicine")), http.StatusNotFound, "NOT_FOUND", "Medicine not found"},
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND", "Resource not found"},
		{"fiber bad request", fiber.NewError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "VALIDATION_FAILED", "invalid payload"},
		{"unknown error is opaque", errors.New("connection reset by peer"), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", ToDomainError(err).Message)
}
