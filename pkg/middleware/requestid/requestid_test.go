package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestMintsIDWhenAbsent(t *testing.T) {
	r, seen := router()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.NotEmpty(t, *seen)
	assert.Equal(t, *seen, w.Header().Get(Header))
}

func TestPropagatesIncomingID(t *testing.T) {
	r, seen := router()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "client-supplied-id")
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", *seen)
	assert.Equal(t, "client-supplied-id", w.Header().Get(Header))
}

func TestReplacesOversizedID(t *testing.T) {
	r, seen := router()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, strings.Repeat("x", 200))
	r.ServeHTTP(w, req)

	assert.NotEqual(t, strings.Repeat("x", 200), *seen)
	assert.NotEmpty(t, w.Header().Get(Header))
}
