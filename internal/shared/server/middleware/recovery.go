package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/shared/metrics"
	"fitable-backend/internal/shared/server/respond"
	"fitable-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 and a logged stack. A panic after
// the response was written only logs.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.PanicsTotal.Inc()
			telemetry.Ctx(c.Request.Context()).Error().
				Str("panic", fmt.Sprint(rec)).
				Str("stack", string(debug.Stack())).
				Str("route", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("http.panic")
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
