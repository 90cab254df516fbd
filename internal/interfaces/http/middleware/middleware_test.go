package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/testutil"
	"github.com/turtacn/ReactionMapper/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx interface{}
	r.GET("/x", func(c *gin.Context) {
		fromCtx = c.Request.Context().Value(common.ContextKeyRequestID)
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	id := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, fromCtx)
}

func TestRequestID_ReusesHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc")
	assert.Equal(t, "abc", serve(r, req).Header().Get(HeaderRequestID))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(4))
	r.POST("/x", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("abcd"))).Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("abcde"))).Code)
}

func TestRequestLogging_Levels(t *testing.T) {
	log := testutil.NewMockLogger()
	r := gin.New()
	r.Use(RequestID(), RequestLogging(log, LoggingConfig{SkipPaths: []string{"/healthz"}, SlowThreshold: 5 * time.Millisecond}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(10 * time.Millisecond)
		c.Status(http.StatusOK)
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/ok", "/bad", "/boom", "/slow", "/healthz"} {
		serve(r, httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 1, log.Count("info", "request completed"))
	assert.Equal(t, 1, log.Count("warn", "request completed with client error"))
	assert.Equal(t, 1, log.Count("error", "request completed with server error"))
	assert.Equal(t, 1, log.Count("warn", "slow request"))
	require.Len(t, log.GetMessages(), 4, "skipped paths are not logged")

	entry := log.MessagesAt("error")[0]
	assert.Equal(t, "http", entry.Logger)
	status, _ := entry.Field("status")
	assert.Equal(t, http.StatusInternalServerError, status)
}
