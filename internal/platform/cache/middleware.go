package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderCacheStatus reports whether a response was served from the page cache.
const HeaderCacheStatus = "X-Cache"

// bodyRecorder captures the response body while passing it through.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Page returns a middleware that serves GET responses from the cache under label
// and stores fresh 200 responses for the configured TTL.
func Page(c *ViewCache, label string, varyHeaders ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.Enabled() || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := c.keys.PageKey(label, ctx.Request, varyHeaders...)
		if e, ok := c.Get(ctx.Request.Context(), key); ok {
			ctx.Header(HeaderCacheStatus, "HIT")
			ctx.Data(e.Status, e.ContentType, e.Body)
			ctx.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header(HeaderCacheStatus, "MISS")
		ctx.Next()

		if rec.Status() != http.StatusOK {
			return
		}
		c.Set(ctx.Request.Context(), label, key, Entry{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
	}
}
