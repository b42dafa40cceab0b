package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	traceID := traceIDFrom(c)

	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrArchiveDisabled):
		RespondError(c, http.StatusServiceUnavailable, "Plan archive is not configured")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("[%s] Database error: %v", traceID, err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("[%s] Unknown error: %v", traceID, err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
