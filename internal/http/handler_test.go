package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"fleet-service/internal/fine"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: zerolog.Nop()}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "blocked user", err: service.ErrUserBlocked, want: http.StatusForbidden},
		{name: "permission denied", err: service.ErrPermissionDenied, want: http.StatusForbidden},
		{name: "invalid input", err: service.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "invalid status", err: service.ErrInvalidStatus, want: http.StatusBadRequest},
		{name: "not found", err: service.ErrNotFound, want: http.StatusNotFound},
		{name: "conflict", err: service.ErrConflict, want: http.StatusConflict},
		{name: "unavailable", err: service.ErrUnavailable, want: http.StatusServiceUnavailable},
		{name: "validation error", err: &fine.ValidationError{Field: "due_date", Reason: "required"}, want: http.StatusBadRequest},
		{name: "duplicate fine", err: &service.DuplicateFineError{}, want: http.StatusConflict},
		{name: "duplicate contract", err: &service.DuplicateContractError{}, want: http.StatusConflict},
		{name: "unknown error", err: assert.AnError, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			h.handleError(c, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestDuplicateFinePayloadCarriesChoices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	h.handleError(c, &service.DuplicateFineError{Existing: model.FineRecord{}})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "VIEW_EXISTING")
	assert.Contains(t, body, "SWITCH_TO_UPDATE")
	assert.Contains(t, body, "DISCARD_AND_RESET")
	assert.Contains(t, body, "existing")
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b"))
	assert.Equal(t, []string{"a"}, splitCSV("a,,  "))
	assert.Empty(t, splitCSV(""))
}
