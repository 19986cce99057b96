package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPLimiter_SweepDropsIdleBuckets(t *testing.T) {
	l := newIPLimiter(10, 10)
	l.get("10.0.0.1")
	l.get("10.0.0.2")

	l.mu.Lock()
	l.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Hour)
	l.mu.Unlock()

	l.sweepOnce(time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "10.0.0.1")
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestIPLimiter_StopSweepTerminatesGoroutine(t *testing.T) {
	l := newIPLimiter(10, 10)

	done := make(chan struct{})
	go func() {
		l.sweep()
		close(done)
	}()

	l.stopSweep()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep goroutine did not exit after stop")
	}
}

func TestRateLimit_RejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(1, 2))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client gets its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
