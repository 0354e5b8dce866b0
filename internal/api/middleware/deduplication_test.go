package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flavorcraft/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func dedupRouter(path string, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Deduplication(&config.Config{DedupWindow: window}))
	router.POST(path, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func postAs(t *testing.T, router *gin.Engine, ip, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDeduplicationBlocksRepeatFromSameClient(t *testing.T) {
	router := dedupRouter("/same-client", time.Minute)

	assert.Equal(t, http.StatusOK, postAs(t, router, "10.0.0.1", "/same-client", `{"a":1}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postAs(t, router, "10.0.0.1", "/same-client", `{"a":1}`).Code)
}

func TestDeduplicationAllowsDifferentClients(t *testing.T) {
	// 不同客戶端送相同內容不應互相誤判為重複
	router := dedupRouter("/different-clients", time.Minute)

	assert.Equal(t, http.StatusOK, postAs(t, router, "10.0.0.1", "/different-clients", `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, postAs(t, router, "10.0.0.2", "/different-clients", `{"a":1}`).Code)
}

func TestDeduplicationAllowsDifferentBodies(t *testing.T) {
	router := dedupRouter("/different-bodies", time.Minute)

	assert.Equal(t, http.StatusOK, postAs(t, router, "10.0.0.1", "/different-bodies", `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, postAs(t, router, "10.0.0.1", "/different-bodies", `{"a":2}`).Code)
}
