package respond

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/shared/util"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts the request with a standardized error body. Client errors log
// at warn, server errors at error; user ids are hashed before logging.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	logger := telemetry.Ctx(c.Request.Context())
	var event *zerolog.Event
	if status >= 500 {
		event = logger.Error()
	} else {
		event = logger.Warn()
	}
	event = event.
		Int("status", status).
		Str("code", code).
		Str("route", c.FullPath()).
		Str("method", c.Request.Method)
	if userID := c.GetString("userId"); userID != "" {
		event = event.Str("user", util.HashUserKey(userID)).Bool("is_guest", c.GetBool("isGuest"))
	}
	event.Msg(message)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
