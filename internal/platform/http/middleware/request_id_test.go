package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newRouter(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/ping", func(c *gin.Context) {
		*seen = c.GetString(ContextRequestID)
		c.Status(http.StatusNoContent)
	})
	return r
}

// TestRequestID_Generates はヘッダーがない場合にUUIDが生成されることを検証します。
func TestRequestID_Generates(t *testing.T) {
	t.Parallel()

	var seen string
	w := httptest.NewRecorder()
	newRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	got := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, seen)
}

// TestRequestID_ReusesHeader は呼び出し元のIDが引き継がれ、長すぎる値は置き換えられることを検証します。
func TestRequestID_ReusesHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"caller id", "abc-123", true},
		{"too long", strings.Repeat("x", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(HeaderRequestID, tt.header)
			w := httptest.NewRecorder()
			newRouter(&seen).ServeHTTP(w, req)

			if tt.reuse {
				assert.Equal(t, tt.header, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}
			assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
		})
	}
}
