package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware serves GET requests from the cache and stores successful
// responses. A nil cache disables it.
func Middleware(c *Cache, log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.RequestURI()
		if contentType, body, found := c.Read(key); found {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, contentType, body)
			ctx.Abort()
			return
		}

		ctx.Header("X-Cache", "MISS")
		writer := &responseWriter{
			ResponseWriter: ctx.Writer,
			body:           bytes.NewBuffer(nil),
		}
		ctx.Writer = writer

		ctx.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		if err := c.Write(key, writer.Header().Get("Content-Type"), writer.body.Bytes()); err != nil {
			log.Warn("writing response cache failed", zap.String("key", key), zap.Error(err))
		}
	}
}
