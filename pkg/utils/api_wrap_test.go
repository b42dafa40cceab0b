package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		code    int
		message string
	}{
		{fmt.Errorf("%w: destination is required", ErrInvalidInput), http.StatusBadRequest, "invalid input: destination is required"},
		{ErrPlanNotFound, http.StatusNotFound, "Plan not found"},
		{ErrArchiveDisabled, http.StatusServiceUnavailable, "Plan archive is not configured"},
		{fmt.Errorf("%w: connection refused", ErrDatabaseError), http.StatusInternalServerError, "Internal server error"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "trace-1")

		HandleServiceError(c, tt.err)

		require.Equal(t, tt.code, w.Code)
		var resp APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, tt.code, resp.Code)
		assert.Equal(t, tt.message, resp.Message)
		assert.Equal(t, "trace-1", resp.TraceID)
	}
}
