package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/taskmanager/internal/errors"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"NotFound", apperrors.Wrap(apperrors.ErrNotFound, "task not found"), http.StatusNotFound, "not_found"},
		{"Conflict", apperrors.Wrap(apperrors.ErrConflict, "identity already registered"), http.StatusConflict, "conflict"},
		{"InvalidInput", apperrors.Wrap(apperrors.ErrInvalidInput, "username is required"), http.StatusUnprocessableEntity, "invalid_input"},
		{"Unauthorized", apperrors.Wrap(apperrors.ErrUnauthorized, "token expired"), http.StatusUnauthorized, "unauthorized"},
		{"Forbidden", apperrors.Wrap(apperrors.ErrForbidden, "not the owner"), http.StatusForbidden, "forbidden"},
		{"Unknown", errors.New("database exploded"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext()
			HandleErrorGin(c, tt.err, discardLogger())

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}

func TestHandleErrorGin_UnauthorizedHidesDetail(t *testing.T) {
	// Token-error detail is for logs only; the response body must be generic.
	c, w := testContext()
	HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "token signature is invalid"), discardLogger())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Message, "signature")
}

func TestHandleErrorGin_InternalHidesDetail(t *testing.T) {
	c, w := testContext()
	HandleErrorGin(c, errors.New("pq: connection refused"), discardLogger())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Message, "pq:")
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := testContext()
	HandleErrorGin(c, nil, discardLogger())
	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := testContext()
	HandleBadRequestGin(c, errors.New("invalid JSON"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp.Error)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := testContext()
	HandleValidationErrorGin(c, errors.New("username: cannot be blank"), discardLogger())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}
