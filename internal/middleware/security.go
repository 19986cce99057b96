// Package middleware holds the gin middleware shared by the HTTP
// surface: security headers, correlation IDs, per-client rate
// limiting, and audit logging.
package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nutrigenomics-server/internal/domain"
)

// SecurityHeaders adds security headers to all responses. The service
// handles genetic data, so browser-side protections are not optional.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}

// CorrelationID attaches a unique correlation ID to each request for
// audit trails.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set("correlation_id", correlationID)
		c.Header("X-Correlation-ID", correlationID)

		c.Next()
	}
}

// ipLimiter tracks one token bucket per client IP. Buckets idle for an
// hour are dropped by the sweep.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	limit   rate.Limit
	burst   int
	stop    chan struct{}
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		stop:    make(chan struct{}),
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.clients[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = bucket
	}
	bucket.lastSeen = time.Now()
	return bucket.limiter
}

// sweep drops idle buckets every 10 minutes until stopSweep is called.
func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweepOnce(time.Hour)
		case <-l.stop:
			return
		}
	}
}

func (l *ipLimiter) sweepOnce(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, bucket := range l.clients {
		if time.Since(bucket.lastSeen) > maxIdle {
			delete(l.clients, ip)
		}
	}
}

func (l *ipLimiter) stopSweep() {
	close(l.stop)
}

// RateLimit rejects clients exceeding rps requests per second (with
// the given burst) with 429.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := newIPLimiter(rps, burst)
	go limiter.sweep()

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, domain.APIError{
				Code:    domain.ErrCodeRateLimit,
				Message: "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}

// AuditLogger logs every request in a JSON line format suitable for
// compliance review.
func AuditLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`{"timestamp":"%s","correlation_id":"%s","method":"%s","path":"%s","status":%d,"latency":"%s","client_ip":"%s","user_agent":"%s","response_size":%d}%s`,
			param.TimeStamp.Format(time.RFC3339),
			param.Keys["correlation_id"],
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Request.UserAgent(),
			param.BodySize,
			"\n",
		)
	})
}
