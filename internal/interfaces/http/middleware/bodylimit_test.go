package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optionPayload struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

func newBodyLimitRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/sidebar/options", func(c *gin.Context) {
		var req optionPayload
		if err := c.ShouldBindJSON(&req); err != nil {
			if BodyTooLarge(err) {
				AbortBodyTooLarge(c)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, req.Name)
	})
	router.GET("/sidebar/tree", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	small := `{"name":"Dashboard","link":"/dashboard"}`
	large := `{"name":"` + strings.Repeat("x", 200) + `","link":"/x"}`

	tests := []struct {
		name          string
		body          string
		contentLength int64
		wantStatus    int
	}{
		{"within limit", small, int64(len(small)), http.StatusOK},
		{"declared length over limit", large, int64(len(large)), http.StatusRequestEntityTooLarge},
		{"chunked body over limit", large, -1, http.StatusRequestEntityTooLarge},
		{"chunked body within limit", small, -1, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sidebar/options", io.NopCloser(strings.NewReader(tt.body)))
			req.ContentLength = tt.contentLength
			w := httptest.NewRecorder()

			newBodyLimitRouter(100).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusRequestEntityTooLarge {
				assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
			}
		})
	}
}

func TestBodyLimit_NoBody(t *testing.T) {
	w := httptest.NewRecorder()
	newBodyLimitRouter(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sidebar/tree", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	assert.True(t, BodyTooLarge(&http.MaxBytesError{Limit: 10}))
	assert.False(t, BodyTooLarge(io.ErrUnexpectedEOF))
}
