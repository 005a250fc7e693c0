package middleware

import (
	"net/http"
	"time"

	"routevendor/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InternalErrorMessage is the only detail a client sees for a 500.
const InternalErrorMessage = "Error interno del servidor"

// ErrorHandler answers requests whose handler attached an error with
// c.Error. The causes are logged with the request and vendor; the client
// gets the generic envelope. A response already written is left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		private := c.Errors.ByType(gin.ErrorTypePrivate)
		if len(private) == 0 {
			return
		}

		ev := log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("route", c.FullPath()).
			Str("method", c.Request.Method).
			Strs("causes", private.Errors())
		if claims := GetClaims(c); claims != nil {
			ev = ev.Str("vendor", claims.Username)
		}
		ev.Err(private.Last().Err).Msg("request failed")

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(InternalErrorMessage))
	}
}

// Recovery handles panics and converts them into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(InternalErrorMessage))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
