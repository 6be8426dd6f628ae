package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func performGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("lần gọi thứ hai trả từ cache, handler không chạy lại", func(t *testing.T) {
		store := cache.New(time.Minute, time.Minute)
		calls := 0
		router := gin.New()
		router.GET("/data", Cache(store, time.Minute), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"calls": calls})
		})

		first := performGet(router, "/data")
		second := performGet(router, "/data")

		require.Equal(t, http.StatusOK, first.Code)
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("response lỗi không được cache", func(t *testing.T) {
		store := cache.New(time.Minute, time.Minute)
		calls := 0
		router := gin.New()
		router.GET("/fail", Cache(store, time.Minute), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		})

		performGet(router, "/fail")
		performGet(router, "/fail")
		assert.Equal(t, 2, calls)
	})

	t.Run("query string khác nhau là các entry khác nhau", func(t *testing.T) {
		store := cache.New(time.Minute, time.Minute)
		calls := 0
		router := gin.New()
		router.GET("/data", Cache(store, time.Minute), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusOK, gin.H{"q": c.Query("q")})
		})

		performGet(router, "/data?q=1")
		performGet(router, "/data?q=2")
		assert.Equal(t, 2, calls)
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	// Burst 3, gần như không refill trong thời gian chạy test
	router.GET("/ping", RateLimiter(rate.Limit(0.001), 3), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 3; i++ {
		w := performGet(router, "/ping")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := performGet(router, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests.")
}
