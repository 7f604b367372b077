package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Fragment())
	router.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"request_id": GetRequestID(c),
			"fragment":   IsFragment(c),
		})
	})
	return router
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), id)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestFragment(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"fragment":false`)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"fragment":true`)
}
