package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLoggedBody bounds how much of a body the detailed logger keeps
const maxLoggedBody = 4 << 10

// bodyLogWriter tees the response body into a buffer
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLoggingMiddleware logs one line per request. With detailed set,
// it also logs JSON request and response bodies, which is meant for local runs.
func RequestLoggingMiddleware(detailed bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := LogWithCorrelationID(c.Request.Context())

		var blw *bodyLogWriter
		if detailed {
			logRequestBody(c, log)
			blw = &bodyLogWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
			c.Writer = blw
		}

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if blw != nil && strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") {
			fields = append(fields, zap.Any("response", decodeLoggedJSON(blw.body.Bytes())))
		}
		for _, ginErr := range c.Errors {
			fields = append(fields, zap.NamedError("handler_error", ginErr.Err))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("Request completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

func logRequestBody(c *gin.Context, log *zap.Logger) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Debug("Failed to read request body", zap.Error(err))
		return
	}
	c.Request.Body = NewBodyReader(body)

	if strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
		log.Debug("Request body",
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("body", decodeLoggedJSON(body)),
		)
	}
}

func decodeLoggedJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	if len(raw) > maxLoggedBody {
		raw = raw[:maxLoggedBody]
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
