package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"curabot/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, role := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/", handlers...)
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAndAuthorize(t *testing.T) {
	token, err := utils.GenerateToken("u1", "doctor", time.Hour)
	require.NoError(t, err)

	r := newTestRouter(JWTAuthMiddleware(), Authorize("doctor", "admin"))
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer nope").Code)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"doctor"}`, w.Body.String())

	patient, err := utils.GenerateToken("u2", "patient", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+patient).Code)

	expired, err := utils.GenerateToken("u1", "doctor", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+expired).Code)
}

func TestOptionalJWTAuth(t *testing.T) {
	r := newTestRouter(OptionalJWTAuth())
	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"","role":""}`, w.Body.String())

	token, err := utils.GenerateToken("admin-1", "admin", time.Hour)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"admin-1","role":"admin"}`, get(r, "Bearer "+token).Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newTestRouter(RateLimitMiddleware(2))
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)
}

func TestRequestLoggerSetsHeader(t *testing.T) {
	r := newTestRouter(RequestLogger(zap.NewNop()))
	w := get(r, "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
