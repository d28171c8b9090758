package api

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/wavegram/wavegram/internal/auth"
	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/internal/service"
	"github.com/wavegram/wavegram/pkg/telemetry"
)

// userContextKey is where the authorization guard stores the resolved
// caller for downstream handlers
const userContextKey = "authUser"

// RequireAuth resolves the bearer token on each request to a caller
// identity and attaches it to the request context. Requests without a
// valid, unexpired access token are rejected.
func RequireAuth(tokens *auth.TokenService, users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "Access denied, no token provided")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			switch err {
			case auth.ErrTokenExpired:
				abortWithError(c, http.StatusUnauthorized, "Token expired, please login again")
			case auth.ErrTokenInvalid:
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			default:
				c.Error(err)
				c.Abort()
			}
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		if user == nil {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the caller attached by RequireAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RateLimiter tracks one token bucket per client IP
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mutex    sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}
}

// GetLimiter returns the rate limiter for a given key (IP address)
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// cleanup drops limiters that have regained full capacity
func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for key, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burst) {
			delete(rl.limiters, key)
		}
	}
}

// RateLimit limits requests per client IP
func RateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	rateLimiter := NewRateLimiter(requestsPerMinute, burst)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rateLimiter.cleanup()
		}
	}()

	return func(c *gin.Context) {
		limiter := rateLimiter.GetLimiter(c.ClientIP())
		if !limiter.Allow() {
			abortWithError(c, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Limit: %d requests per minute", requestsPerMinute))
			return
		}
		c.Next()
	}
}

// Trace records a span per request
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(),
			fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(
			attribute.Int("http.status_code", c.Writer.Status()),
			attribute.String("http.method", c.Request.Method),
		)
	}
}
